// Package config provides configuration structures and utilities for
// proxyspray. It defines the knobs for input expansion, probe pacing, and
// report generation, plus the optional .proxyspray YAML defaults file.
package config
