package config

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	defaultConfigPath            = "~/.config/marquee/config.toml"
	defaultDataDir               = "~/.local/share/marquee"
	defaultLogDir                = "~/.local/share/marquee/logs"
	defaultAPIBind               = "127.0.0.1:7488"
	defaultTelegramWorkers       = 4
	defaultTelegramPollTimeout   = 30
	defaultTMDBLanguage          = "en-US"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL      = "https://image.tmdb.org/t/p/w500"
	defaultTMDBRequestTimeout    = 10
	defaultTMDBRequestsPerSecond = 20
	defaultTMDBBurst             = 5
	defaultPaymentLink           = "https://yourpaymentlink.example.com"
	defaultOwnerName             = "Ctgmovies23"
	defaultSyntheticExtension    = "mkv"
	defaultSearchLogFile         = "searches.db"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogRetentionDays      = 30
	defaultLogMaxSizeMB          = 10
	defaultLogMaxBackups         = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Telegram: Telegram{
			APIEndpoint: tgbotapi.APIEndpoint,
			Workers:     defaultTelegramWorkers,
			PollTimeout: defaultTelegramPollTimeout,
		},
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			Language:          defaultTMDBLanguage,
			ImageBaseURL:      defaultTMDBImageBaseURL,
			RequestTimeout:    defaultTMDBRequestTimeout,
			RequestsPerSecond: defaultTMDBRequestsPerSecond,
			Burst:             defaultTMDBBurst,
		},
		Caption: Caption{
			SyntheticExtension: defaultSyntheticExtension,
		},
		SearchLog: SearchLog{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
		},
	}
}

// TMDBTimeout returns the per-request TMDB timeout.
func (c *Config) TMDBTimeout() time.Duration {
	return time.Duration(c.TMDB.RequestTimeout) * time.Second
}
