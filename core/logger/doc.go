// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development (debug level)
// and production settings, and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID set by the rayid middleware from a
// Fiber context and attaches it to the log entry, so that every log line written
// while handling one request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console (colored, human readable) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Warn("Authentication decode error", zap.Error(err))
package logger
