// Package services defines shared utilities consumed by the request pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers, chat and user IDs,
//     and stage names for logging.
//   - Structured error markers plus the Wrap helper so remote failures can be
//     classified (transient, timeout, not found) without string matching.
//
// Use these helpers when wiring new integrations so degraded-path logging
// stays uniform across the bot.
package services
