// Package pipeline runs a single movie request end to end: search logging,
// display-name normalisation, catalog resolution, and caption rendering.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marquee/internal/caption"
	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/release"
	"marquee/internal/services"
)

// Request is one incoming query.
type Request struct {
	UserID int64
	ChatID int64
	Query  string
}

// MetadataFetcher resolves a title and optional year to catalog metadata.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, title, year string) *catalog.Record
}

// SearchLogger records a query. Implementations must not block the request
// on failure.
type SearchLogger interface {
	LogSearch(ctx context.Context, userID, chatID int64, query string)
}

// Result is the outcome of a request, exposed for the CLI and tests.
type Result struct {
	Query      string
	PrettyName string
	Attributes release.Attributes
	Title      string
	Year       string
	Record     *catalog.Record
	Caption    caption.Caption
}

// Pipeline wires the request stages together. It holds no per-request state
// and is safe for concurrent use.
type Pipeline struct {
	fetcher   MetadataFetcher
	searchLog SearchLogger
	builder   caption.Builder
	extension string
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSearchLogger records every handled query.
func WithSearchLogger(searchLog SearchLogger) Option {
	return func(p *Pipeline) {
		p.searchLog = searchLog
	}
}

// WithSyntheticExtension sets the extension appended to queries before the
// display name is built. An empty value appends nothing.
func WithSyntheticExtension(ext string) Option {
	return func(p *Pipeline) {
		p.extension = strings.TrimPrefix(ext, ".")
	}
}

// New constructs a pipeline.
func New(fetcher MetadataFetcher, builder caption.Builder, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:   fetcher,
		builder:   builder,
		extension: "mkv",
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle processes req and returns the caption to deliver. ok is false when
// the query is blank and nothing should be sent.
func (p *Pipeline) Handle(ctx context.Context, req Request) (caption.Caption, bool) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return caption.Caption{}, false
	}
	ctx = services.WithUserID(ctx, req.UserID)
	ctx = services.WithChatID(ctx, req.ChatID)

	if p.searchLog != nil {
		p.searchLog.LogSearch(ctx, req.UserID, req.ChatID, query)
	}
	result := p.Lookup(ctx, query)
	return result.Caption, true
}

// Lookup runs normalisation, resolution, and formatting for query without
// recording it.
func (p *Pipeline) Lookup(ctx context.Context, query string) Result {
	query = strings.TrimSpace(query)
	logger := logging.WithContext(ctx, p.logger)
	start := time.Now()

	name := query
	if p.extension != "" {
		name += "." + p.extension
	}
	attrs, pretty := release.Normalize(name)
	title, year := catalog.ResolveTitle(query)

	var record *catalog.Record
	if p.fetcher != nil {
		record = p.fetcher.FetchMetadata(services.WithStage(ctx, "resolve"), title, year)
	}
	built := p.builder.Build(record, pretty)

	logger.Info("request handled",
		logging.String("query", query),
		logging.String("pretty_name", pretty),
		logging.String("title", title),
		logging.String("year", year),
		logging.Bool("metadata_found", record != nil),
		logging.Bool("has_image", built.HasImage()),
		logging.Duration("elapsed", time.Since(start)),
		logging.String(logging.FieldEventType, "request_handled"),
	)

	return Result{
		Query:      query,
		PrettyName: pretty,
		Attributes: attrs,
		Title:      title,
		Year:       year,
		Record:     record,
		Caption:    built,
	}
}
