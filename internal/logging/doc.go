// Package logging provides structured logging for mxsetup.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. It provides both general logging
// functions and specialized functions for server-validation logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (individual discovery round trips)
//   - Info: Normal operations (validation attempts, configuration changes)
//   - Warn: Non-fatal issues (failed discovery requests that have fallbacks)
//   - Error: Failed validation attempts, startup failures
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Configuration confirmed",
//	    zap.String("homeserver_url", "https://matrix.org"),
//	    zap.String("identity_server_url", "https://vector.im"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogDiscoveryRequest(url, statusCode, elapsed, err)
//	logging.LogValidationStart(attempt, hsURL, isURL)
//	logging.LogValidationResult(attempt, err)
//
// # Configuration
//
// Logging is silent by default so the TUI owns the terminal. Set the
// MXSETUP_LOG_LEVEL environment variable to enable output, which goes to
// stderr:
//
//	MXSETUP_LOG_LEVEL=debug mxsetup validate --homeserver https://example.com
//
// Initialize at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
