package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The pacing defaults are part of the tool's compatibility contract:
// changing them changes the observable request rate against upstream
// proxies.
const (
	// DefaultWindow is the maximum number of probes outstanding at once.
	DefaultWindow = 4

	// DefaultSubmitDelay is the fixed pause after every submission.
	// This throttles the outgoing request rate regardless of window slack;
	// it is a pacing control, not a concurrency limiter.
	DefaultSubmitDelay = 250 * time.Millisecond

	// DefaultPollInterval is how long the collector sleeps between scans
	// of the outstanding set while waiting for completions. Completed
	// probes may therefore be reported up to one interval late.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultTimeout bounds each probe request. An unbounded probe can
	// block a worker forever on a hung connection; set a very large value
	// if unbounded waits are genuinely wanted.
	DefaultTimeout = 30 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "proxyspray"
)

// Config holds all options for a spray run.
// It is populated from CLI flags (and optionally the .proxyspray defaults
// file) and passed through the application explicitly rather than living in
// package-level state.
type Config struct {
	// ProxyInputs are the raw --proxy-urls tokens: literal proxy URLs
	// and/or paths to files containing one proxy URL per line.
	ProxyInputs []string

	// TargetInputs are the raw --targets tokens: literal URLs, bare IPv4
	// addresses, CIDR ranges, and/or paths to files of the same.
	TargetInputs []string

	// HeaderInputs are the raw --http-headers tokens: literal
	// "Key: Value" strings and/or paths to files of the same.
	HeaderInputs []string

	// Window is the maximum number of concurrently outstanding probes.
	Window int

	// SubmitDelay is slept unconditionally after each submission.
	SubmitDelay time.Duration

	// PollInterval is slept between completion scans while the window is
	// full and while draining.
	PollInterval time.Duration

	// Timeout is the per-request timeout for each probe.
	Timeout time.Duration

	// DisplayFailures enables FAILURE lines on stdout. SUCCESS lines are
	// always printed.
	DisplayFailures bool

	// AssumeHTTP controls whether scheme-less targets gain an http://
	// variant. Disabled by the --no-assume-http flag.
	AssumeHTTP bool

	// AssumeHTTPS controls whether scheme-less targets gain an https://
	// variant. Disabled by the --no-assume-https flag.
	AssumeHTTPS bool

	// Preflight enables a concurrent reachability check of every proxy
	// before dispatching begins. Unreachable proxies are reported on
	// stderr but still participate in the run.
	Preflight bool

	// Progress renders a progress bar on stderr while dispatching.
	Progress bool

	// SaveHistory persists the run and its results to the SQLite history
	// database under the XDG data directory.
	SaveHistory bool

	// Verbose enables debug-level logging.
	Verbose bool

	// MarkdownSummary and JSONSummary select an optional summary report
	// format. Mutually exclusive. The default stdout line output is
	// unaffected either way.
	MarkdownSummary bool
	JSONSummary     bool

	// SummaryFile is where the summary report is written. Empty means
	// stdout, after the result lines.
	SummaryFile string

	// ConfigFilePath is an explicit path to the .proxyspray defaults
	// file. If empty, the current directory and then the home directory
	// are searched.
	ConfigFilePath string

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a Config with default values.
// Scheme assumptions default to enabled; the CLI flags turn them off.
func NewConfig() *Config {
	return &Config{
		Window:       DefaultWindow,
		SubmitDelay:  DefaultSubmitDelay,
		PollInterval: DefaultPollInterval,
		Timeout:      DefaultTimeout,
		AssumeHTTP:   true,
		AssumeHTTPS:  true,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for proxyspray.
// On Linux: ~/.local/share/proxyspray
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for proxyspray.
// On Linux: ~/.config/proxyspray
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any expansion or dispatch.
func (c *Config) Validate() error {
	if len(c.ProxyInputs) == 0 {
		return ErrNoProxy
	}
	if len(c.TargetInputs) == 0 {
		return ErrNoTarget
	}
	if c.Window <= 0 {
		return ErrInvalidWindow
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.SubmitDelay < 0 || c.PollInterval < 0 {
		return ErrNegativeDelay
	}
	if c.MarkdownSummary && c.JSONSummary {
		return ErrConflictingSummaryFormats
	}
	return nil
}
