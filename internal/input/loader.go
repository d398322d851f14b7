package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// isFile reports whether s names an existing regular file.
// Tokens that are not files are treated as literal values.
func isFile(s string) bool {
	fi, err := os.Stat(s)
	return err == nil && fi.Mode().IsRegular()
}

// readLines reads a file and returns its non-blank lines, trimmed.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return lines, nil
}

// expandTokens flattens a mix of literal tokens and file paths into a
// single ordered list of values.
func expandTokens(tokens []string) ([]string, error) {
	var values []string
	for _, t := range tokens {
		if !isFile(t) {
			values = append(values, t)
			continue
		}
		lines, err := readLines(t)
		if err != nil {
			return nil, err
		}
		values = append(values, lines...)
	}
	return values, nil
}

// LoadProxies expands proxy tokens into a deduplicated, insertion-ordered
// proxy set. Duplicates are dropped silently; a malformed proxy is fatal.
func LoadProxies(tokens []string) (*ProxySet, error) {
	values, err := expandTokens(tokens)
	if err != nil {
		return nil, err
	}

	set := NewProxySet()
	for _, v := range values {
		p, err := ParseProxy(v)
		if err != nil {
			return nil, err
		}
		set.Add(p)
	}
	return set, nil
}

// LoadTargets expands target tokens into the final target URL list.
// Targets are deliberately not deduplicated: a target supplied twice is
// probed twice.
func LoadTargets(tokens []string, a Assumption) ([]string, error) {
	values, err := expandTokens(tokens)
	if err != nil {
		return nil, err
	}

	var targets []string
	for _, v := range values {
		expanded, err := ExpandTarget(v, a)
		if err != nil {
			return nil, err
		}
		targets = append(targets, expanded...)
	}
	return targets, nil
}

// LoadHeaders expands header tokens into the shared header set, on top of
// any base headers from the defaults file. Later values win on key clashes.
func LoadHeaders(tokens []string, base map[string]string) (map[string]string, error) {
	headers := make(map[string]string, len(base))
	for k, v := range base {
		headers[k] = v
	}

	values, err := expandTokens(tokens)
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		key, value, err := ParseHeader(v)
		if err != nil {
			return nil, err
		}
		headers[key] = value
	}
	return headers, nil
}
