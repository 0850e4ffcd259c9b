// Package catalog resolves a raw chat query to TMDB metadata.
//
// ResolveTitle reduces the query to a bare title and an optional year using
// the release rule table, and Resolver.FetchMetadata performs the two-step
// search-then-details lookup. Lookups are best-effort: every remote failure
// is logged and reported as "no metadata" rather than an error, and nothing
// is cached or retried.
package catalog
