// Package log provides secure logging functionality with automatic masking
// of sensitive header values, built on top of the standard slog package.
//
// Spray runs routinely carry credentials in their shared header set
// (Authorization, Proxy-Authorization, Cookie, API keys), and proxy URLs may
// embed userinfo. The MaskingHandler wraps any slog.Handler and redacts
// attribute values that look like secrets before they reach the log output,
// so verbose logging never leaks a credential into a terminal scrollback or
// a shared log file.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("probe submitted",
//	    "authorization", "Bearer abc123", // masked
//	    "target", "http://example.com",   // untouched
//	)
package log
