package input

import (
	"fmt"
	"regexp"
)

// headerPattern matches a "Key: Value" header string. The key is greedy, so
// a value containing colons splits at the last colon that is followed by
// whitespace. At least one space after the colon is required.
var headerPattern = regexp.MustCompile(`^(.+):\s+(.+)$`)

// ParseHeader parses an HTTP header string into its key and value.
func ParseHeader(raw string) (key, value string, err error) {
	m := headerPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHeader, raw)
	}
	return m[1], m[2], nil
}
