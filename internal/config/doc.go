// Package config loads, normalizes, and validates Marquee configuration.
//
// It defines the strongly typed Config struct, default values, TOML parsing,
// path expansion, and environment fallbacks for the bot token, TMDB key, and
// caption branding. Callers should use Load to obtain a ready-to-use
// configuration, then call EnsureDirectories before starting long-running
// services. The package also ships the sample config used by `marquee config
// init`.
package config
