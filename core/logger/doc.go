// Package logger provides a structured logging facility based on Zap.
//
// It builds a configured logger for both the CLI and the HTTP server and
// integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log
// entry, so every line of a request can be correlated. WithRun tags the lines of
// one consolidation, sync, merge or cleanup run with its kind and run ID.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Consolidation started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
