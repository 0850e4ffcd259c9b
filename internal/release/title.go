package release

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanTitle turns dot-separated release text into a display title: dots
// become spaces, runs of whitespace collapse, and each word is capitalised
// (first letter upper, the rest lower).
func CleanTitle(raw string) string {
	words := strings.Fields(strings.ReplaceAll(raw, ".", " "))
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// capitalize builds fresh casers per call; a cases.Caser is stateful and
// must not be shared across goroutines.
func capitalize(word string) string {
	lower := cases.Lower(language.Und)
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError && size <= 1 {
		return lower.String(word)
	}
	return cases.Upper(language.Und).String(word[:size]) + lower.String(word[size:])
}
