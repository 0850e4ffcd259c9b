// Package searchlog persists the history of queries users sent to the bot.
//
// The store is an append-only SQLite table (modernc driver, WAL mode) whose
// schema is managed by goose migrations embedded in the binary. Entries are
// written best-effort from the request path through Recorder, which logs and
// swallows failures, and read back by the CLI and the status API.
package searchlog
