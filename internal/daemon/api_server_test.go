package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/searchlog"
)

type stubBot struct{}

func (stubBot) Run(ctx context.Context) error { <-ctx.Done(); return nil }
func (stubBot) Handled() int64                { return 7 }

type stubSearches struct {
	entries []searchlog.Entry
	err     error
	limit   int
}

func (s *stubSearches) Recent(_ context.Context, limit int) ([]searchlog.Entry, error) {
	s.limit = limit
	return s.entries, s.err
}

func newTestServer(t *testing.T, opts ...Option) *apiServer {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.APIBind = "127.0.0.1:0"
	d, err := New(&cfg, stubBot{}, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return d.api
}

func TestHandleSearchesDefaultsLimit(t *testing.T) {
	src := &stubSearches{entries: []searchlog.Entry{{ID: 1, UserID: 42, ChatID: -100, Query: "Inception"}}}
	srv := newTestServer(t, WithSearchSource(src))

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/searches", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if src.limit != defaultSearchLimit {
		t.Fatalf("limit = %d, want %d", src.limit, defaultSearchLimit)
	}
	var resp SearchesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Enabled || len(resp.Searches) != 1 || resp.Searches[0].Query != "Inception" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleSearchesValidatesLimit(t *testing.T) {
	srv := newTestServer(t, WithSearchSource(&stubSearches{}))
	for _, raw := range []string{"0", "-3", "abc"} {
		w := httptest.NewRecorder()
		srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/searches?limit="+raw, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("limit=%s: expected 400, got %d", raw, w.Code)
		}
	}
}

func TestHandleSearchesCapsLimit(t *testing.T) {
	src := &stubSearches{}
	srv := newTestServer(t, WithSearchSource(src))
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/searches?limit=100000", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if src.limit != maxSearchLimit {
		t.Fatalf("limit = %d, want %d", src.limit, maxSearchLimit)
	}
}

func TestHandleSearchesWithoutLog(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/searches", nil))
	var resp SearchesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Enabled || resp.Searches == nil || len(resp.Searches) != 0 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleSearchesStoreError(t *testing.T) {
	srv := newTestServer(t, WithSearchSource(&stubSearches{err: errors.New("disk I/O error")}))
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/searches", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHandleStatusReportsUptime(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	srv := newTestServer(t, WithClock(clock), WithBotUsername("marquee_bot"))
	d := srv.daemon
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	t.Cleanup(d.Stop)
	clock.Advance(90 * time.Second)

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	var status Status
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !status.Running || status.UptimeSeconds != 90 || status.Handled != 7 {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.StartedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("started_at = %v", status.StartedAt)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/queue", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	w = httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/status", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
