package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"marquee/internal/catalog/tmdb"
	"marquee/internal/logging"
	"marquee/internal/release"
	"marquee/internal/services"
)

// ResolveTitle reduces a raw query to the title used for the catalog search
// and the first whole-token year, if any. The year and one adjacent bracket
// on each side are removed, as are all quality, source, language and dub
// tags; later years stay in the title.
func ResolveTitle(query string) (string, string) {
	rest, year := release.CutYear(query)
	return release.CleanTitle(release.StripTags(rest)), year
}

// Resolver looks up metadata for resolved titles.
type Resolver struct {
	searcher tmdb.Searcher
	logger   *slog.Logger
}

// NewResolver constructs a resolver backed by searcher.
func NewResolver(searcher tmdb.Searcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		logger:   logging.NewComponentLogger(logger, "resolver"),
	}
}

// FetchMetadata searches for title (narrowed to year when set), takes the
// top-ranked result, and fetches its details. It returns nil when nothing
// matched or any step failed.
func (r *Resolver) FetchMetadata(ctx context.Context, title, year string) *Record {
	logger := logging.WithContext(ctx, r.logger)
	if title == "" {
		logger.Info("catalog lookup skipped", logging.String(logging.FieldEventType, "tmdb_lookup_skipped"), logging.String("reason", "empty title"))
		return nil
	}

	opts := tmdb.SearchOptions{}
	if year != "" {
		if parsed, err := strconv.Atoi(year); err == nil {
			opts.Year = parsed
		}
	}

	start := time.Now()
	resp, err := r.searcher.SearchMovie(ctx, title, opts)
	if err != nil {
		r.warnFailure(logger, "search", title, year, err)
		return nil
	}
	if resp == nil || len(resp.Results) == 0 {
		logger.Info("catalog lookup found no match",
			logging.String("title", title),
			logging.String("year", year),
			logging.String(logging.FieldEventType, "tmdb_no_match"),
			logging.Duration("latency", time.Since(start)),
		)
		return nil
	}

	top := resp.Results[0]
	movie, err := r.searcher.GetMovieDetails(ctx, top.ID)
	if err != nil {
		r.warnFailure(logger, "details", title, year, err, logging.Int64("tmdb_id", top.ID))
		return nil
	}
	if movie == nil {
		return nil
	}

	logger.Debug("catalog lookup resolved",
		logging.String("title", title),
		logging.String("year", year),
		logging.Int64("tmdb_id", movie.ID),
		logging.Int("candidates", len(resp.Results)),
		logging.Duration("latency", time.Since(start)),
	)
	return recordFromMovie(movie)
}

func (r *Resolver) warnFailure(logger *slog.Logger, step, title, year string, err error, extra ...logging.Attr) {
	attrs := append([]logging.Attr{
		logging.String("step", step),
		logging.String("title", title),
		logging.String("year", year),
		logging.String("failure_class", services.Classify(err)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check TMDB availability and tmdb.api_key"),
		logging.String(logging.FieldImpact, "announcement sent without metadata"),
	}, extra...)
	logging.WarnWithContext(logger, "catalog lookup failed", "tmdb_lookup_failed", attrs...)
}
