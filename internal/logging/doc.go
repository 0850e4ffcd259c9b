// Package logging assembles structured slog loggers and formatting helpers used
// across Marquee services.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing (file outputs rotate and age out through lumberjack), and exposes
// context-aware helpers so pipeline code can automatically tag log lines with
// chat, user, and correlation IDs. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
