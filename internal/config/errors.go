package config

import "errors"

// Configuration validation errors.
// These are package-level sentinel errors so callers can use errors.Is()
// for programmatic handling while still getting a readable message.
var (
	// ErrNoProxy is returned when no proxy URL or proxy file is specified.
	ErrNoProxy = errors.New("no proxies specified: provide --proxy-urls with URLs or file paths")

	// ErrNoTarget is returned when no target token is specified.
	ErrNoTarget = errors.New("no targets specified: provide --targets with URLs, IPs, CIDRs, or file paths")

	// ErrInvalidWindow is returned when the concurrency window is not positive.
	ErrInvalidWindow = errors.New("invalid process count: must be positive")

	// ErrInvalidTimeout is returned when the probe timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrNegativeDelay is returned when a pacing delay is negative.
	// Use 0 to disable pacing entirely.
	ErrNegativeDelay = errors.New("invalid pacing delay: must be non-negative")

	// ErrConflictingSummaryFormats is returned when both --markdown and
	// --json are specified. Only one summary format can be used at a time.
	ErrConflictingSummaryFormats = errors.New("conflicting summary formats: --markdown and --json cannot be used together")
)
