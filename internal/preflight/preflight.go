package preflight

import (
	"context"
	"path/filepath"

	"marquee/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the checks that apply to cfg. The Telegram check is only
// run when a bot token is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.SearchLog.Enabled {
		results = append(results, CheckDirectoryAccess("Search log directory", filepath.Dir(cfg.SearchLog.Path)))
	}
	results = append(results, CheckTMDB(ctx, cfg.TMDB.BaseURL, cfg.TMDB.APIKey))
	if cfg.Telegram.BotToken != "" {
		results = append(results, CheckTelegram(ctx, cfg.Telegram.APIEndpoint, cfg.Telegram.BotToken))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
