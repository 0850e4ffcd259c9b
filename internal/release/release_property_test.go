package release_test

import (
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"marquee/internal/release"
)

var tagTokens = []string{
	"360p", "480p", "720p", "1080p", "2160p", "4k", "4K",
	"HDRip", "webrip", "BluRay", "DVDRip", "WEB-DL", "HDR", "BRRip",
	"BEN", "Bengali", "hin", "HINDI", "Eng", "english", "DUB", "Dubbed",
}

var separatorGen = rapid.SampledFrom([]string{".", " ", "-", "  "})

// plainWordGen produces lower-case words without digits so they never form
// a year.
func plainWordGen(alphabet string) *rapid.Generator[string] {
	return rapid.StringOfN(rapid.SampledFrom([]rune(alphabet)), 1, 8, -1)
}

func joinWords(t *rapid.T, words []string) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteString(separatorGen.Draw(t, "sep"))
		}
		b.WriteString(w)
	}
	return b.String()
}

func releaseNameGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		word := rapid.OneOf(
			plainWordGen("abcdefghijklmnopqrstuvwxyz"),
			rapid.SampledFrom(tagTokens),
			rapid.SampledFrom([]string{"1999", "2023", "2008", "1950"}),
		)
		words := rapid.SliceOfN(word, 1, 10).Draw(t, "words")
		name := joinWords(t, words)
		if rapid.Bool().Draw(t, "ext") {
			name += "." + rapid.SampledFrom([]string{"mkv", "mp4", "avi"}).Draw(t, "extension")
		}
		return name
	})
}

func TestPrettyNameNeverEmptyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringN(1, 64, -1).Draw(t, "name")
		if release.PrettyName(release.Extract(name)) == "" {
			t.Fatalf("empty pretty name for %q", name)
		}
	})
}

func TestYearTruncatesTitleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		before := rapid.SliceOfN(plainWordGen("abcdefghijklmnop"), 1, 4).Draw(t, "before")
		after := rapid.SliceOfN(plainWordGen("qrstuvwxyz"), 0, 4).Draw(t, "after")
		year := rapid.IntRange(1900, 2099).Draw(t, "year")
		yearText := rapid.SampledFrom([]string{"%d", "(%d)", "[%d]"}).Draw(t, "format")
		yearText = strings.Replace(yearText, "%d", strconv.Itoa(year), 1)

		words := append(append(append([]string{}, before...), yearText), after...)
		attrs := release.Extract(joinWords(t, words))

		if attrs.Year != strconv.Itoa(year) {
			t.Fatalf("expected year %d, got %q", year, attrs.Year)
		}
		if strings.ContainsAny(strings.ToLower(attrs.Title), "qrstuvwxyz") {
			t.Fatalf("title %q contains text from after the year", attrs.Title)
		}
	})
}

func TestQualityDetectedAndStrippedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		quality := rapid.SampledFrom([]string{"360p", "480p", "720p", "1080p", "2160p", "4k"}).Draw(t, "quality")
		if rapid.Bool().Draw(t, "upper") {
			quality = strings.ToUpper(quality)
		}
		words := rapid.SliceOfN(plainWordGen("acfgjmoqwxyz"), 1, 5).Draw(t, "words")
		at := rapid.IntRange(0, len(words)).Draw(t, "at")
		words = append(words[:at], append([]string{quality}, words[at:]...)...)

		attrs := release.Extract(joinWords(t, words))
		if attrs.Quality != strings.ToUpper(quality) {
			t.Fatalf("expected quality %q, got %q", strings.ToUpper(quality), attrs.Quality)
		}
		for _, field := range strings.Fields(attrs.Title) {
			if strings.EqualFold(field, quality) {
				t.Fatalf("quality token left in title %q", attrs.Title)
			}
		}
	})
}

func TestTitleReextractionFindsNoTagsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := releaseNameGen().Draw(t, "name")
		attrs := release.Extract(name)
		again := release.Extract(attrs.Title)
		if again.Year != "" || again.Quality != "" || again.Source != "" || again.Language != "" || again.Dubbed {
			t.Fatalf("title %q of %q re-detected tags: %#v", attrs.Title, name, again)
		}
	})
}
