package release

import (
	"strings"
)

// Attributes captures what could be recognised in a release name.
type Attributes struct {
	Base      string `json:"base"`
	Extension string `json:"extension,omitempty"`
	Title     string `json:"title"`
	Year      string `json:"year,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Source    string `json:"source,omitempty"`
	Language  string `json:"language,omitempty"`
	Dubbed    bool   `json:"dubbed"`
}

// mediaExtensions lists container suffixes treated as a file extension. Any
// other trailing segment is part of the name ("Movie.2023.Hindi.Dubbed").
var mediaExtensions = map[string]struct{}{
	"mkv": {}, "mp4": {}, "avi": {}, "m4v": {}, "mov": {}, "wmv": {}, "webm": {},
	"ts": {}, "m2ts": {}, "mpg": {}, "mpeg": {}, "flv": {}, "3gp": {},
}

// SplitExtension separates a trailing media extension from name.
func SplitExtension(name string) (string, string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	ext := name[idx+1:]
	if _, ok := mediaExtensions[strings.ToLower(ext)]; !ok {
		return name, ""
	}
	return name[:idx], ext
}

// Extract applies the rule table to name and returns the recognised
// attributes. It never fails; unmatched rules leave their field empty.
func Extract(name string) Attributes {
	base, ext := SplitExtension(name)
	attrs := Attributes{Base: base, Extension: ext}

	for _, rule := range Rules {
		value, ok := rule.Match(base)
		if !ok {
			continue
		}
		switch rule.Kind {
		case KindYear:
			attrs.Year = value
		case KindQuality:
			attrs.Quality = strings.ToUpper(value)
		case KindSource:
			attrs.Source = value
		case KindLanguage:
			if attrs.Language == "" {
				attrs.Language = rule.Label
			}
		case KindDub:
			attrs.Dubbed = true
		}
	}

	titleRaw := base
	if attrs.Year != "" {
		// Everything from the year onwards is release noise.
		if idx := strings.Index(titleRaw, attrs.Year); idx >= 0 {
			titleRaw = titleRaw[:idx]
		}
	}
	attrs.Title = CleanTitle(StripTags(titleRaw))
	return attrs
}

// PrettyName assembles the canonical display name from attrs. Present fields
// are joined by single spaces in a fixed order and the extension, when one
// was recognised, is re-attached.
func PrettyName(attrs Attributes) string {
	parts := make([]string, 0, 6)
	if attrs.Title != "" {
		parts = append(parts, attrs.Title)
	}
	if attrs.Year != "" {
		parts = append(parts, "("+attrs.Year+")")
	}
	if attrs.Quality != "" {
		parts = append(parts, attrs.Quality)
	}
	if attrs.Source != "" {
		parts = append(parts, attrs.Source)
	}
	if attrs.Language != "" {
		parts = append(parts, attrs.Language)
	}
	if attrs.Dubbed {
		parts = append(parts, DubLabel)
	}

	name := strings.Join(parts, " ")
	if name == "" {
		name = CleanTitle(attrs.Base)
	}
	if name == "" {
		name = attrs.Base
	}
	if attrs.Extension != "" {
		name += "." + attrs.Extension
	}
	return name
}

// Normalize extracts attributes from name and builds its display name.
func Normalize(name string) (Attributes, string) {
	attrs := Extract(name)
	return attrs, PrettyName(attrs)
}

// DubLabel is the display value for dubbed releases.
const DubLabel = "Dubbed"
