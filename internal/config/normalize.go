package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTelegram()
	c.normalizeTMDB()
	c.normalizeCaption()
	if err := c.normalizeSearchLog(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		// Hosting platforms that probe a keepalive endpoint hand out the port via PORT.
		if port, ok := os.LookupEnv("PORT"); ok && strings.TrimSpace(port) != "" {
			c.Paths.APIBind = "0.0.0.0:" + strings.TrimSpace(port)
		} else {
			c.Paths.APIBind = defaultAPIBind
		}
	}
	return nil
}

func (c *Config) normalizeTelegram() {
	if c.Telegram.BotToken == "" {
		if value, ok := os.LookupEnv("TELEGRAM_BOT_TOKEN"); ok {
			c.Telegram.BotToken = value
		}
	}
	c.Telegram.BotToken = strings.TrimSpace(c.Telegram.BotToken)
	c.Telegram.APIEndpoint = strings.TrimSpace(c.Telegram.APIEndpoint)
	if c.Telegram.APIEndpoint == "" {
		c.Telegram.APIEndpoint = Default().Telegram.APIEndpoint
	}
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	c.TMDB.ImageBaseURL = strings.TrimSpace(c.TMDB.ImageBaseURL)
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
}

func (c *Config) normalizeCaption() {
	c.Caption.PaymentLink = strings.TrimSpace(c.Caption.PaymentLink)
	if c.Caption.PaymentLink == "" {
		c.Caption.PaymentLink = envOrDefault("PAYMENT_LINK", defaultPaymentLink)
	}
	c.Caption.OwnerName = strings.TrimSpace(c.Caption.OwnerName)
	if c.Caption.OwnerName == "" {
		c.Caption.OwnerName = envOrDefault("BOT_OWNER_NAME", defaultOwnerName)
	}
	c.Caption.SyntheticExtension = strings.TrimPrefix(strings.TrimSpace(c.Caption.SyntheticExtension), ".")
}

// envOrDefault treats a blank variable the same as an unset one.
func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (c *Config) normalizeSearchLog() error {
	if strings.TrimSpace(c.SearchLog.Path) == "" {
		c.SearchLog.Path = filepath.Join(c.Paths.DataDir, defaultSearchLogFile)
	}
	var err error
	if c.SearchLog.Path, err = expandPath(c.SearchLog.Path); err != nil {
		return fmt.Errorf("search_log.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
