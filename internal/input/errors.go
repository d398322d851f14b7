package input

import "errors"

// Expansion errors. All of these abort the run: inputs are not
// pre-validated, so the first malformed value ends expansion.
var (
	// ErrInvalidProxy is returned for a proxy string that does not begin
	// with http:// or https://.
	ErrInvalidProxy = errors.New("invalid proxy: must begin with http:// or https://")

	// ErrInvalidHeader is returned for a header string that is not in
	// "Key: Value" form.
	ErrInvalidHeader = errors.New("invalid header: must be in \"Key: Value\" form")

	// ErrInvalidCIDR is returned for a value that looks like a CIDR range
	// but does not parse as an IPv4 network.
	ErrInvalidCIDR = errors.New("invalid CIDR: must be an IPv4 network")
)
