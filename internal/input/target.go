package input

import (
	"encoding/binary"
	"fmt"
	"net"
	"regexp"
	"strings"
)

// Assumption controls how scheme-less targets are expanded.
// When a flag is set, bare addresses and scheme-less URLs gain the
// corresponding scheme prefix. With both disabled, a bare address expands
// to nothing at all.
type Assumption struct {
	HTTP  bool
	HTTPS bool
}

// cidrPattern detects CIDR notation: a trailing slash followed by at most
// two digits. Values that match but fail to parse as an IPv4 network are a
// fatal error, not a fallthrough to URL handling.
var cidrPattern = regexp.MustCompile(`/[0-9]{0,2}$`)

// ExpandTarget normalizes one raw target token into zero or more URLs.
//
// CIDR ranges enumerate every address in the network, including the network
// and broadcast addresses, each expanded by the bare-address assumptions.
// Bare IPv4 addresses expand by the same assumptions. Anything else is
// treated as a literal URL or hostname: scheme prefixes are added per the
// assumptions, and if no assumption fires the value passes through
// unchanged.
func ExpandTarget(raw string, a Assumption) ([]string, error) {
	if cidrPattern.MatchString(raw) {
		return expandCIDR(raw, a)
	}

	// A dotted-quad IPv4 address. The colon check keeps IPv4-mapped IPv6
	// forms like ::ffff:10.0.0.1 on the literal path.
	if ip := net.ParseIP(raw); ip != nil && ip.To4() != nil && !strings.Contains(raw, ":") {
		return assumeBare(raw, a), nil
	}

	if out := assumeLiteral(raw, a); len(out) > 0 {
		return out, nil
	}
	return []string{raw}, nil
}

// expandCIDR enumerates an IPv4 network and applies the bare-address
// assumptions to every address in it. Host bits in the input are masked
// rather than rejected, so 10.0.0.1/30 means the 10.0.0.0/30 network.
func expandCIDR(raw string, a Assumption) ([]string, error) {
	_, network, err := net.ParseCIDR(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCIDR, raw)
	}

	v4 := network.IP.To4()
	if v4 == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCIDR, raw)
	}

	ones, bits := network.Mask.Size()
	count := uint64(1) << (bits - ones)
	base := binary.BigEndian.Uint32(v4)

	var out []string
	for i := uint64(0); i < count; i++ {
		var addr [4]byte
		binary.BigEndian.PutUint32(addr[:], base+uint32(i))
		out = append(out, assumeBare(net.IP(addr[:]).String(), a)...)
	}
	return out, nil
}

// assumeBare expands a bare address: http first, then https, each gated by
// its assumption flag.
func assumeBare(addr string, a Assumption) []string {
	var out []string
	if a.HTTP {
		out = append(out, "http://"+addr)
	}
	if a.HTTPS {
		out = append(out, "https://"+addr)
	}
	return out
}

// assumeLiteral expands a literal URL or hostname.
//
// Both branches gate on a case-sensitive "http" prefix check, and since
// "https" also begins with "http", an explicit https:// literal gains no
// http:// variant. That asymmetry is part of the tool's compatibility
// contract and is covered by tests; do not "fix" it here.
func assumeLiteral(raw string, a Assumption) []string {
	var out []string
	if a.HTTP && !strings.HasPrefix(raw, "http") && !strings.HasPrefix(raw, "https") {
		out = append(out, "http://"+raw)
	}
	if a.HTTPS && !strings.HasPrefix(raw, "https") && !strings.HasPrefix(raw, "http") {
		out = append(out, "https://"+raw)
	}
	return out
}
