// Package main hosts the marquee CLI entrypoint and command graph.
//
// The Cobra command tree starts the Telegram bot daemon, queries a running
// daemon for status, and exposes the request pipeline offline: parse shows
// what the Normalizer recognises in a release name and lookup renders the
// caption a chat would receive. Configuration is loaded lazily so commands
// that need none (parse, config init) work on a fresh machine.
package main
