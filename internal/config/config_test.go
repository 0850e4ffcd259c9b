package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"marquee/internal/config"
)

func TestLoadDefaultConfigUsesEnvAndExpandsPaths(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-key")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("PAYMENT_LINK", "")
	t.Setenv("BOT_OWNER_NAME", "")
	t.Setenv("PORT", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "marquee")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.SearchLog.Path != filepath.Join(wantData, "searches.db") {
		t.Fatalf("unexpected search log path: %q", cfg.SearchLog.Path)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7488" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Fatalf("expected TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Telegram.BotToken != "123:abc" {
		t.Fatalf("expected bot token from env, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Caption.PaymentLink != "https://yourpaymentlink.example.com" {
		t.Fatalf("unexpected payment link default: %q", cfg.Caption.PaymentLink)
	}
	if cfg.Caption.OwnerName != "Ctgmovies23" {
		t.Fatalf("unexpected owner default: %q", cfg.Caption.OwnerName)
	}
	if cfg.TMDBTimeout().Seconds() != 10 {
		t.Fatalf("unexpected tmdb timeout: %v", cfg.TMDBTimeout())
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Fatalf("ValidateBot returned error: %v", err)
	}
}

func TestLoadCaptionEnvOverrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "key")
	t.Setenv("PAYMENT_LINK", "https://pay.example.org")
	t.Setenv("BOT_OWNER_NAME", "  Night Owl  ")
	t.Setenv("HOME", t.TempDir())

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Caption.PaymentLink != "https://pay.example.org" {
		t.Fatalf("expected payment link from env, got %q", cfg.Caption.PaymentLink)
	}
	if cfg.Caption.OwnerName != "Night Owl" {
		t.Fatalf("expected trimmed owner from env, got %q", cfg.Caption.OwnerName)
	}
}

func TestLoadFileValuesBeatEnv(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("PAYMENT_LINK", "https://env.example.org")
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "marquee.toml")
	content := `
[tmdb]
api_key = "file-key"

[caption]
payment_link = "https://file.example.org"
synthetic_extension = ".mp4"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Fatalf("expected file key, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Caption.PaymentLink != "https://file.example.org" {
		t.Fatalf("expected file payment link, got %q", cfg.Caption.PaymentLink)
	}
	if cfg.Caption.SyntheticExtension != "mp4" {
		t.Fatalf("expected leading dot trimmed, got %q", cfg.Caption.SyntheticExtension)
	}
}

func TestLoadAPIBindFromPort(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "key")
	t.Setenv("PORT", "9090")
	t.Setenv("HOME", t.TempDir())

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.APIBind != "0.0.0.0:9090" {
		t.Fatalf("expected PORT bind, got %q", cfg.Paths.APIBind)
	}
}

func TestLoadRequiresTMDBKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("HOME", t.TempDir())

	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error without TMDB key")
	}
	if !strings.Contains(err.Error(), "tmdb.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBotRequiresToken(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "key"
	if err := cfg.ValidateBot(); err == nil {
		t.Fatal("expected error without bot token")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"workers", func(c *config.Config) { c.Telegram.Workers = 0 }},
		{"timeout", func(c *config.Config) { c.TMDB.RequestTimeout = 0 }},
		{"burst", func(c *config.Config) { c.TMDB.Burst = 0 }},
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }},
		{"extension", func(c *config.Config) { c.Caption.SyntheticExtension = "a/b" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.TMDB.APIKey = "key"
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.TMDB.RequestTimeout != 10 {
		t.Fatalf("unexpected sample timeout: %d", cfg.TMDB.RequestTimeout)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.SearchLog.Path = filepath.Join(base, "db", "searches.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, filepath.Join(base, "db")} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q", dir)
		}
	}
}
