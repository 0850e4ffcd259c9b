package release

import (
	"regexp"
	"strings"
)

// Kind identifies the attribute a rule extracts.
type Kind string

const (
	KindYear     Kind = "year"
	KindQuality  Kind = "quality"
	KindSource   Kind = "source"
	KindLanguage Kind = "language"
	KindDub      Kind = "dub"
)

// Rule is one entry of the ordered extraction table. Label is the canonical
// value emitted for category rules (languages, dub); quality and source
// rules report the matched text instead.
type Rule struct {
	Kind    Kind
	Label   string
	Tokens  []string
	pattern *regexp.Regexp
}

// Match returns the first whole-token match of the rule in s.
func (r Rule) Match(s string) (string, bool) {
	loc := r.pattern.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}

// Strip removes every whole-token occurrence of the rule's tokens from s.
func (r Rule) Strip(s string) string {
	if len(r.Tokens) == 0 {
		return s
	}
	return r.pattern.ReplaceAllString(s, "")
}

var (
	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// bracketedYearPattern matches a year plus one optional adjacent bracket
	// on either side, e.g. "(2023)" or "[1999".
	bracketedYearPattern = regexp.MustCompile(`[(\[{]?\b(?:19|20)\d{2}\b[)\]}]?`)
)

// Rules is the ordered extraction table shared by the normaliser and the
// catalog title resolver. Language rules appear in priority order: the first
// one that matches wins.
var Rules = []Rule{
	{Kind: KindYear, pattern: yearPattern},
	newRule(KindQuality, "", "360p", "480p", "720p", "1080p", "2160p", "4k"),
	newRule(KindSource, "", "HDRip", "WEBRip", "BluRay", "DVDRip", "WEB-DL", "HDR", "BRRip"),
	newRule(KindLanguage, "Bengali", "BEN", "BENGALI"),
	newRule(KindLanguage, "Hindi", "HIN", "HINDI"),
	newRule(KindLanguage, "English", "ENG", "ENGLISH"),
	newRule(KindDub, DubLabel, "DUB", "DUBBED"),
}

func newRule(kind Kind, label string, tokens ...string) Rule {
	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = regexp.QuoteMeta(token)
	}
	return Rule{
		Kind:    kind,
		Label:   label,
		Tokens:  tokens,
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

// StripTags removes every quality, source, language and dub token from s.
// Years are left alone.
func StripTags(s string) string {
	for _, rule := range Rules {
		if rule.Kind == KindYear {
			continue
		}
		s = rule.Strip(s)
	}
	return s
}

// FindYear returns the first whole-token year in s.
func FindYear(s string) (string, bool) {
	year := yearPattern.FindString(s)
	return year, year != ""
}

// CutYear removes the first whole-token year from s together with one
// directly adjacent opening and closing bracket. It reports the year found.
func CutYear(s string) (string, string) {
	loc := bracketedYearPattern.FindStringIndex(s)
	if loc == nil {
		return s, ""
	}
	year := yearPattern.FindString(s[loc[0]:loc[1]])
	return s[:loc[0]] + s[loc[1]:], year
}
