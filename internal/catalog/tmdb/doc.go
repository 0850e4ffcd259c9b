// Package tmdb provides the minimal TMDB API client used to resolve movie
// queries.
//
// It authenticates requests and exposes movie search with an optional release
// year filter plus movie detail retrieval. Requests share an optional
// token-bucket limiter so concurrent bot workers stay inside TMDB's request
// budget, and failures are tagged with the services error markers (timeout,
// not found, transient) so callers can log a meaningful class. Options allow
// tests to supply custom HTTP clients without modifying production code.
package tmdb
