// Package release turns free-form movie filenames and chat queries into
// structured release attributes and a canonical display name.
//
// Extraction runs one ordered rule table (year, quality, source, language,
// dub) over the input and derives the title from whatever precedes the
// year once every known tag has been stripped. The same table backs
// title resolution in the catalog package so both passes agree on which
// tokens are tags. Nothing here fails: unrecognised input simply yields
// empty fields and a capitalised title.
package release
