// Package caption renders the announcement posted for a movie request.
package caption

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"marquee/internal/catalog"
)

const (
	// OverviewLimit is the number of characters of the overview kept before
	// the ellipsis is appended.
	OverviewLimit = 250
	// Ellipsis marks a truncated overview.
	Ellipsis = "..."

	// DefaultImageBaseURL is prefixed to TMDB poster paths.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	// ParseMode is the Telegram parse mode the text is written for.
	ParseMode = "HTML"

	notFoundMarker = "❌ Details not found."
	noOverview     = "No description available."
	unknownRating  = "N/A"
)

// Caption is a formatted announcement. ImageURL is empty when no poster is
// available.
type Caption struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// HasImage reports whether the caption should be sent as a photo.
func (c Caption) HasImage() bool {
	return c.ImageURL != ""
}

// Builder renders captions with fixed branding.
type Builder struct {
	PaymentLink  string
	OwnerName    string
	ImageBaseURL string
}

// Build renders record, or the not-found template when record is nil.
// prettyName is the display name derived from the user's query.
func (b Builder) Build(record *catalog.Record, prettyName string) Caption {
	if record == nil {
		return Caption{Text: fmt.Sprintf("🎬 <b>%s</b>\n\n%s\n\n💰 Payment: %s",
			html.EscapeString(prettyName), notFoundMarker, html.EscapeString(b.PaymentLink))}
	}

	title := record.Title
	if title == "" {
		title = prettyName
	}
	heading := title
	if year := releaseYear(record.ReleaseDate); year != "" {
		heading = fmt.Sprintf("%s (%s)", title, year)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "🎬 <b>%s</b>\n\n", html.EscapeString(heading))
	fmt.Fprintf(&text, "⭐ <b>Rating:</b> <code>%s</code>\n", formatRating(record))
	fmt.Fprintf(&text, "📝 <b>Overview:</b> %s\n\n", html.EscapeString(TruncateOverview(record.Overview)))
	fmt.Fprintf(&text, "💰 <b>Payment / Premium:</b> <a href=\"%s\">Click Here</a>\n\n", html.EscapeString(b.PaymentLink))
	fmt.Fprintf(&text, "© Bot by %s", html.EscapeString(b.OwnerName))

	out := Caption{Text: text.String()}
	if record.PosterPath != "" {
		base := b.ImageBaseURL
		if base == "" {
			base = DefaultImageBaseURL
		}
		out.ImageURL = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(record.PosterPath, "/")
	}
	return out
}

// TruncateOverview applies the overview budget, counting characters rather
// than bytes. Empty overviews are replaced by a placeholder.
func TruncateOverview(overview string) string {
	if strings.TrimSpace(overview) == "" {
		return noOverview
	}
	if utf8.RuneCountInString(overview) <= OverviewLimit {
		return overview
	}
	runes := []rune(overview)
	return string(runes[:OverviewLimit]) + Ellipsis
}

func releaseYear(date string) string {
	if len(date) <= 4 {
		return date
	}
	return date[:4]
}

func formatRating(record *catalog.Record) string {
	value, ok := record.Rating.Value()
	if !ok {
		return unknownRating
	}
	return fmt.Sprintf("%.1f/10", value)
}
