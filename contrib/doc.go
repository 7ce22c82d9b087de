// Package contrib provides additional functionality and utilities
// for the autolink reconnect supervisor.
//
// Everything in this package is intended to extend the core library
// with features that are not part of it. This includes transport
// adapters, example integrations, and experimental features.
//
// Note that this package is outside of the backward compatibility guarantees
// provided by the core library. Changes to this package may
// introduce breaking changes without following semantic versioning.
//
// The contrib directory includes [github.com/autolink/autolink.go/contrib/wslink],
// a WebSocket link adapter that exposes the connector and status-probe
// callbacks a Supervisor expects, demonstrating the callback contract
// against a real transport.
package contrib
