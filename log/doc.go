// Package log provides fast, structured logging based on Go's slog package.
//
// This package wraps Go's standard slog library with additional convenience
// functions and configuration options for command-line tooling: decoders,
// parsers, and other pipelines that need leveled diagnostics without
// committing to a specific output format.
//
// # Features
//
//   - Structured logging with key-value pairs
//   - Pluggable slog.Handler implementations (console, custom)
//   - Configurable log levels
//   - High performance with minimal allocations
//   - Testing utilities for log verification
//
// # Basic Usage
//
//	import "github.com/retrodis/dis8086/log"
//
//	func main() {
//		logger := log.New()
//		logger.Debug("decoded instruction",
//			log.Int("offset", 0),
//			log.String("text", "mov cx, bx"),
//		)
//	}
//
// # Log Levels
//
//   - Debug: Detailed diagnostic information
//   - Info: General operational messages
//   - Warn: Warning conditions that don't halt operation
//   - Error: Error conditions that may affect functionality
//
// # Testing Support
//
// NewTestLogger routes log output to a test's own log, which is shown when
// the test fails or runs with -v, and fails the test on any record at
// Error level or above. It does not offer assertions on individual entries.
//
// # Thread Safety
//
// All logging operations are thread-safe and can be used concurrently
// from multiple goroutines without external synchronization.
package log
