// Package runs exposes the run history over HTTP.
//
// # HTTP Endpoints
//
//   - GET /history : Lists recent runs (supports ?kind= and ?limit=).
//   - GET /history/:id : Returns one run.
package runs
