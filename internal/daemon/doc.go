// Package daemon coordinates the long-running marquee process.
//
// It holds a flock-based lock in the data directory so only one bot polls a
// given token at a time, runs the Telegram service until it stops or the
// daemon is stopped, and serves a small HTTP API for health checks, runtime
// status and recent searches.
//
// Keep orchestration here: request handling lives in the pipeline and
// telegram packages while the daemon owns startup, shutdown, and the status
// surface.
package daemon
