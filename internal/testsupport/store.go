package testsupport

import (
	"testing"

	"marquee/internal/config"
	"marquee/internal/searchlog"
)

// MustOpenStore opens the configured search log for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, opts ...searchlog.Option) *searchlog.Store {
	t.Helper()

	store, err := searchlog.Open(cfg.SearchLog.Path, opts...)
	if err != nil {
		t.Fatalf("searchlog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
