// Package preflight provides readiness checks for the external services and
// filesystem paths marquee depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll at startup and logs each failure as a warning.
//   - The CLI "marquee check" command prints every result.
//
// Checks never retry; each one is bounded by its own short timeout.
package preflight
