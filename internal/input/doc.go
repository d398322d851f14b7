// Package input expands raw proxy, target, and header tokens into the
// normalized values a spray run operates on.
//
// Each CLI token may be a literal value or a path to a file containing one
// value per line. Targets additionally expand: CIDR ranges enumerate every
// address in the network, and scheme-less addresses gain http:// and/or
// https:// variants according to the configured assumptions.
//
// Malformed proxies, headers, and CIDR ranges are fatal: expansion stops at
// the first bad value rather than skipping it, so a typo cannot silently
// shrink a run.
package input
