package release_test

import (
	"testing"

	"marquee/internal/release"
)

func TestExtractFullReleaseName(t *testing.T) {
	attrs := release.Extract("Pathaan.2023.1080p.WEB-DL.Hindi.Dubbed")

	want := release.Attributes{
		Base:     "Pathaan.2023.1080p.WEB-DL.Hindi.Dubbed",
		Title:    "Pathaan",
		Year:     "2023",
		Quality:  "1080P",
		Source:   "WEB-DL",
		Language: "Hindi",
		Dubbed:   true,
	}
	if attrs != want {
		t.Fatalf("unexpected attributes:\n got %#v\nwant %#v", attrs, want)
	}
	if got := release.PrettyName(attrs); got != "Pathaan (2023) 1080P WEB-DL Hindi Dubbed" {
		t.Fatalf("unexpected pretty name %q", got)
	}
}

func TestExtractWithoutTags(t *testing.T) {
	attrs, pretty := release.Normalize("randomtext")
	if attrs.Title != "Randomtext" {
		t.Fatalf("expected title Randomtext, got %q", attrs.Title)
	}
	if attrs.Year != "" || attrs.Quality != "" || attrs.Source != "" || attrs.Language != "" || attrs.Dubbed {
		t.Fatalf("expected no tags, got %#v", attrs)
	}
	if pretty != "Randomtext" {
		t.Fatalf("expected pretty name Randomtext, got %q", pretty)
	}
}

func TestNormalizeKeepsMediaExtension(t *testing.T) {
	_, pretty := release.Normalize("the.dark.knight.2008.720p.BluRay.mkv")
	if pretty != "The Dark Knight (2008) 720P BluRay.mkv" {
		t.Fatalf("unexpected pretty name %q", pretty)
	}
}

func TestSplitExtension(t *testing.T) {
	tests := []struct {
		in       string
		wantBase string
		wantExt  string
	}{
		{"movie.mkv", "movie", "mkv"},
		{"Movie.2020.MP4", "Movie.2020", "MP4"},
		{"Movie.2020.Hindi", "Movie.2020.Hindi", ""},
		{"noext", "noext", ""},
		{"trailing.", "trailing.", ""},
		{".mkv", "", "mkv"},
	}
	for _, tt := range tests {
		base, ext := release.SplitExtension(tt.in)
		if base != tt.wantBase || ext != tt.wantExt {
			t.Fatalf("SplitExtension(%q) = (%q, %q), want (%q, %q)", tt.in, base, ext, tt.wantBase, tt.wantExt)
		}
	}
}

func TestExtractQualityIsUpperCased(t *testing.T) {
	for _, in := range []string{"Movie 4k", "Movie 4K", "Movie.2160p", "Movie 480P"} {
		attrs := release.Extract(in)
		if attrs.Quality == "" {
			t.Fatalf("expected quality for %q", in)
		}
		if attrs.Title != "Movie" {
			t.Fatalf("expected quality stripped from title for %q, got %q", in, attrs.Title)
		}
	}
	if got := release.Extract("Movie 4k").Quality; got != "4K" {
		t.Fatalf("expected 4K, got %q", got)
	}
}

func TestExtractSourceKeepsCasing(t *testing.T) {
	attrs := release.Extract("Some.Movie.webrip.x264")
	if attrs.Source != "webrip" {
		t.Fatalf("expected source as written, got %q", attrs.Source)
	}
	if attrs.Title != "Some Movie X264" {
		t.Fatalf("unexpected title %q", attrs.Title)
	}
}

func TestExtractLanguagePriority(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Movie English Hindi Bengali", "Bengali"},
		{"Movie ENG HIN", "Hindi"},
		{"Movie eng", "English"},
		{"Movie Benchmark", ""},
		{"Movie.BEN", "Bengali"},
	}
	for _, tt := range tests {
		if got := release.Extract(tt.in).Language; got != tt.want {
			t.Fatalf("Extract(%q).Language = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractTitleStopsAtYear(t *testing.T) {
	attrs := release.Extract("Avatar (2009) Extended Cut 1080p")
	if attrs.Year != "2009" {
		t.Fatalf("expected year 2009, got %q", attrs.Year)
	}
	if attrs.Title != "Avatar (" {
		t.Fatalf("expected text after year dropped, got %q", attrs.Title)
	}
}

func TestExtractIgnoresEmbeddedYear(t *testing.T) {
	attrs := release.Extract("Room1999")
	if attrs.Year != "" {
		t.Fatalf("expected no whole-token year, got %q", attrs.Year)
	}
	if attrs.Title != "Room1999" {
		t.Fatalf("unexpected title %q", attrs.Title)
	}
}

func TestExtractYearOutOfRange(t *testing.T) {
	if got := release.Extract("Movie 1899 2100").Year; got != "" {
		t.Fatalf("expected no year, got %q", got)
	}
}

func TestExtractDubAliases(t *testing.T) {
	for _, in := range []string{"Movie dub", "Movie.DUBBED", "Movie-Dub"} {
		attrs := release.Extract(in)
		if !attrs.Dubbed {
			t.Fatalf("expected dubbed for %q", in)
		}
		if attrs.Title != "Movie" && attrs.Title != "Movie-" {
			t.Fatalf("expected dub alias stripped for %q, got %q", in, attrs.Title)
		}
	}
}

func TestPrettyNameFallsBackToBase(t *testing.T) {
	if got := release.PrettyName(release.Attributes{Base: "some.thing"}); got != "Some Thing" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := release.PrettyName(release.Attributes{Base: "..."}); got != "..." {
		t.Fatalf("expected raw base fallback, got %q", got)
	}
	if got := release.PrettyName(release.Attributes{Extension: "mkv"}); got != ".mkv" {
		t.Fatalf("expected bare extension, got %q", got)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := map[string]string{
		"the.matrix":        "The Matrix",
		"  LOUD   words  ":  "Loud Words",
		"spider-man.NO.WAY": "Spider-man No Way",
		"":                  "",
		"élan.vital":        "Élan Vital",
	}
	for in, want := range tests {
		if got := release.CleanTitle(in); got != want {
			t.Fatalf("CleanTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCutYear(t *testing.T) {
	tests := []struct {
		in       string
		wantRest string
		wantYear string
	}{
		{"Pathaan (2023) Hindi", "Pathaan  Hindi", "2023"},
		{"Movie [1999]", "Movie ", "1999"},
		{"Movie 2001 2002", "Movie  2002", "2001"},
		{"NoYear", "NoYear", ""},
		{"Room1999", "Room1999", ""},
	}
	for _, tt := range tests {
		rest, year := release.CutYear(tt.in)
		if rest != tt.wantRest || year != tt.wantYear {
			t.Fatalf("CutYear(%q) = (%q, %q), want (%q, %q)", tt.in, rest, year, tt.wantRest, tt.wantYear)
		}
	}
}

func TestStripTagsLeavesYears(t *testing.T) {
	got := release.StripTags("Movie 2020 1080p HDRip ENG DUB")
	if got != "Movie 2020    " {
		t.Fatalf("unexpected stripped text %q", got)
	}
}
