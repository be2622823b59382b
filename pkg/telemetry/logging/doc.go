// Package logging provides structured logging with credential redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging in JSON or text format
//   - Automatic credential redaction (bearer tokens, basic-auth userinfo, API keys)
//   - Context-aware logging with request ID, endpoint, and trace/span IDs
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, _ := logging.New(logging.Config{
//	    Level:             "info",
//	    Format:            "json",
//	    RedactCredentials: true,
//	})
//
//	logger.Info("query executed",
//	    "endpoint", "https://dbpedia.org/sparql",
//	    "authorization", "Bearer abc123",  // redacted automatically
//	    "wall_time_ms", 1234,
//	)
//
//	ctx := logging.WithRequestID(context.Background(), "req-123")
//	ctxLogger := logger.WithContext(ctx)
//	ctxLogger.Info("processing")  // includes request_id automatically
package logging
