package input

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/proxyspray/internal/model"
)

// proxyPattern matches a proxy URL: an http:// or https:// prefix
// (case-insensitive) followed by anything.
var proxyPattern = regexp.MustCompile(`(?i)^(https?://)(.+)`)

// ParseProxy parses a proxy string in URL form.
// The scheme is the token before the first colon, kept exactly as typed;
// the address is the raw string as supplied, prefix included.
func ParseProxy(raw string) (model.Proxy, error) {
	m := proxyPattern.FindStringSubmatch(raw)
	if m == nil {
		return model.Proxy{}, fmt.Errorf("%w: %q", ErrInvalidProxy, raw)
	}

	scheme, _, _ := strings.Cut(m[1], ":")
	return model.Proxy{Scheme: scheme, Address: raw}, nil
}

// ProxySet is an ordered set of proxies deduplicated by (scheme, address).
// Iteration order is insertion order; adding a duplicate is a silent no-op.
type ProxySet struct {
	items []model.Proxy
	seen  map[model.Proxy]struct{}
}

// NewProxySet creates an empty ProxySet.
func NewProxySet() *ProxySet {
	return &ProxySet{seen: make(map[model.Proxy]struct{})}
}

// Add inserts p unless an identical proxy is already present.
// It reports whether the proxy was actually added.
func (s *ProxySet) Add(p model.Proxy) bool {
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.items = append(s.items, p)
	return true
}

// Len returns the number of distinct proxies in the set.
func (s *ProxySet) Len() int {
	return len(s.items)
}

// Proxies returns the proxies in insertion order.
// The returned slice is shared; callers must not mutate it.
func (s *ProxySet) Proxies() []model.Proxy {
	return s.items
}
