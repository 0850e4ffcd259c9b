// Package daemonrun wires configuration into a running marquee daemon.
package daemonrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"marquee/internal/config"
	"marquee/internal/daemon"
	"marquee/internal/logging"
	"marquee/internal/pipeline"
	"marquee/internal/preflight"
	"marquee/internal/searchlog"
	"marquee/internal/telegram"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Run starts the bot and blocks until a signal arrives or the bot stops.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.NewFromConfig(cfg, logging.Overrides{Level: opts.LogLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	sessionID := uuid.NewString()
	logger = logger.With(logging.String("session_id", sessionID))

	logConfigSnapshot(logger, cfg)
	for _, result := range preflight.Failed(preflight.RunAll(signalCtx, cfg)) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldErrorHint, "run marquee check for details"),
		)
	}

	pidPath := cfg.PIDPath()
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	var (
		pipelineOpts []pipeline.Option
		daemonOpts   []daemon.Option
	)
	if cfg.SearchLog.Enabled {
		store, err := searchlog.Open(cfg.SearchLog.Path, searchlog.WithLogger(logger))
		if err != nil {
			logger.Error("open search log", logging.Error(err))
			return err
		}
		defer store.Close()
		pipelineOpts = append(pipelineOpts, pipeline.WithSearchLogger(searchlog.NewRecorder(store, logger)))
		daemonOpts = append(daemonOpts, daemon.WithSearchSource(store))
	}

	handler, err := pipeline.NewFromConfig(cfg, logger, pipelineOpts...)
	if err != nil {
		return err
	}

	bot, err := telegram.NewBotAPI(cfg.Telegram, logger)
	if err != nil {
		return err
	}
	daemonOpts = append(daemonOpts, daemon.WithBotUsername(bot.Self.UserName))

	service := telegram.NewService(bot, handler, telegram.Options{
		Workers:      cfg.Telegram.Workers,
		PollTimeout:  cfg.Telegram.PollTimeout,
		AllowPrivate: cfg.Telegram.AllowPrivate,
	}, logger)

	d, err := daemon.New(cfg, service, logger, daemonOpts...)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		logging.ErrorWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "stop the other marquee instance or free the API port"),
		)
		return err
	}

	select {
	case <-signalCtx.Done():
		logger.Info("marquee daemon shutting down")
	case <-d.Done():
		if err := d.Err(); err != nil {
			return err
		}
		return errors.New("telegram update loop exited unexpectedly")
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logConfigSnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	logger.Info("configuration snapshot",
		logging.String(logging.FieldEventType, "config_snapshot"),
		logging.Bool("tmdb_key_present", strings.TrimSpace(cfg.TMDB.APIKey) != ""),
		logging.String("tmdb_language", cfg.TMDB.Language),
		logging.Int("workers", cfg.Telegram.Workers),
		logging.Bool("allow_private", cfg.Telegram.AllowPrivate),
		logging.Bool("search_log_enabled", cfg.SearchLog.Enabled),
		logging.String("api_bind", cfg.Paths.APIBind),
	)
}
