package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"marquee/internal/config"
)

// LogFileName is the active log file inside the configured log directory.
const LogFileName = "marquee.log"

// Options describes logger construction parameters.
type Options struct {
	Level            string
	Format           string
	OutputPaths      []string
	ErrorOutputPaths []string
	// Rotation applies to every file output. Zero values use lumberjack defaults.
	Rotation Rotation
}

// Rotation controls rotation and pruning of file outputs.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	// MaxAgeDays removes rotated files older than this many days; 0 keeps them.
	MaxAgeDays int
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	paths := append(withDefault(opts.OutputPaths, "stdout"), withDefault(opts.ErrorOutputPaths, "stderr")...)
	out, err := openOutputs(paths, opts.Rotation)
	if err != nil {
		return nil, err
	}

	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))

	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		return slog.New(newConsoleHandler(out, level)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(out, jsonHandlerOptions(level))), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// Overrides adjusts config-derived settings for a single process.
type Overrides struct {
	// Level replaces logging.level when set.
	Level string
}

// NewFromConfig builds the daemon logger: terminal output plus a rotated
// file in paths.log_dir.
func NewFromConfig(cfg *config.Config, overrides Overrides) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: overrides.Level})
	}

	level := cfg.Logging.Level
	if strings.TrimSpace(overrides.Level) != "" {
		level = overrides.Level
	}
	opts := Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		Rotation: Rotation{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.RetentionDays,
		},
	}
	if cfg.Paths.LogDir != "" {
		logPath := filepath.Join(cfg.Paths.LogDir, LogFileName)
		opts.OutputPaths = append(opts.OutputPaths, logPath)
		opts.ErrorOutputPaths = append(opts.ErrorOutputPaths, logPath)
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func withDefault(paths []string, fallback string) []string {
	if len(paths) == 0 {
		return []string{fallback}
	}
	return append([]string(nil), paths...)
}

// openOutputs fans out to every distinct path. Anything other than stdout
// or stderr is a lumberjack-rotated file.
func openOutputs(paths []string, rotation Rotation) (io.Writer, error) {
	seen := make(map[string]bool, len(paths))
	var writers []io.Writer
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		switch path {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("ensure log directory: %w", err)
			}
			writers = append(writers, &lumberjack.Logger{
				Filename:   path,
				MaxSize:    rotation.MaxSizeMB,
				MaxBackups: rotation.MaxBackups,
				MaxAge:     rotation.MaxAgeDays,
			})
		}
	}

	switch len(writers) {
	case 0:
		return os.Stdout, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}
