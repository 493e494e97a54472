// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for both the one-shot CLI commands
// (console encoding, colored levels) and the long-running serve mode (JSON).
//
// # Context Awareness
//
// In serve mode every request carries a RayID. WithRayID extracts it from the
// Fiber context and attaches it to the log entry so all lines of one request
// can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Run started", zap.String("target", "golang"))
package logger
