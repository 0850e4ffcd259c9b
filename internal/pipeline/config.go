package pipeline

import (
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"marquee/internal/caption"
	"marquee/internal/catalog"
	"marquee/internal/catalog/tmdb"
	"marquee/internal/config"
)

// NewFromConfig builds a pipeline backed by a rate-limited TMDB client.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: config is required")
	}
	var limiter *rate.Limiter
	if cfg.TMDB.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.TMDB.RequestsPerSecond), max(cfg.TMDB.Burst, 1))
	}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithTimeout(cfg.TMDBTimeout()),
		tmdb.WithRateLimiter(limiter),
	)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	builder := caption.Builder{
		PaymentLink:  cfg.Caption.PaymentLink,
		OwnerName:    cfg.Caption.OwnerName,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
	}
	base := []Option{WithSyntheticExtension(cfg.Caption.SyntheticExtension)}
	return New(catalog.NewResolver(client, logger), builder, logger, append(base, opts...)...), nil
}
