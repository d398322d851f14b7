package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default defaults-file name.
const DefaultConfigFile = ".proxyspray"

// ErrConfigNotFound is returned when the defaults file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .proxyspray defaults file.
// It lets users keep recurring settings (custom headers, pacing) out of
// their shell history. CLI flags always win over file values.
type File struct {
	// Headers are HTTP headers added to every probe request, merged
	// before any --http-headers values.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Window overrides the default concurrency window when positive.
	Window int `yaml:"window,omitempty"`

	// SubmitDelay, PollInterval, and Timeout are duration strings
	// ("250ms", "1s"). Empty means keep the default.
	SubmitDelay  string `yaml:"submitDelay,omitempty"`
	PollInterval string `yaml:"pollInterval,omitempty"`
	Timeout      string `yaml:"timeout,omitempty"`

	// DisplayFailures enables FAILURE lines by default.
	DisplayFailures bool `yaml:"displayFailures,omitempty"`
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist it returns ErrConfigNotFound; callers decide
// whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the defaults file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .proxyspray in the current directory
//  3. Look for .proxyspray in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Apply copies the file's values onto cfg.
// Only set fields are applied, so the file cannot unset a default.
// Duration strings that fail to parse are reported rather than ignored.
func (f *File) Apply(cfg *Config) error {
	if f.Window > 0 {
		cfg.Window = f.Window
	}
	if f.DisplayFailures {
		cfg.DisplayFailures = true
	}

	for _, d := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"submitDelay", f.SubmitDelay, &cfg.SubmitDelay},
		{"pollInterval", f.PollInterval, &cfg.PollInterval},
		{"timeout", f.Timeout, &cfg.Timeout},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s in config file: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return nil
}
