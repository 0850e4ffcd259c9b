package pipeline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marquee/internal/logging"
	"marquee/internal/pipeline"
	"marquee/internal/testsupport"
)

func TestNewFromConfigEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search/movie":
			if r.URL.Query().Get("query") != "Inception" || r.URL.Query().Get("year") != "2010" {
				t.Errorf("unexpected search query %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"page":1,"results":[{"id":27205,"title":"Inception"}]}`))
		case "/movie/27205":
			_, _ = w.Write([]byte(`{"id":27205,"title":"Inception","release_date":"2010-07-15","vote_average":8.369,"overview":"A thief who steals corporate secrets.","poster_path":"/inception.jpg"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithTMDBBaseURL(server.URL))
	p, err := pipeline.NewFromConfig(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}

	c, ok := p.Handle(context.Background(), pipeline.Request{UserID: 1, ChatID: -100, Query: "Inception 2010 1080p"})
	if !ok {
		t.Fatal("expected caption for non-empty query")
	}
	if c.ImageURL != cfg.TMDB.ImageBaseURL+"/inception.jpg" {
		t.Fatalf("unexpected image url %q", c.ImageURL)
	}
	for _, want := range []string{"Inception (2010)", "8.4/10", "A thief who steals corporate secrets.", "https://pay.example.com", "TestOwner"} {
		if !strings.Contains(c.Text, want) {
			t.Fatalf("caption missing %q:\n%s", want, c.Text)
		}
	}
}

func TestNewFromConfigRequiresKey(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTMDBKey(""))
	if _, err := pipeline.NewFromConfig(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error without TMDB key")
	}
}
