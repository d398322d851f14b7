package model

// Proxy represents an upstream HTTP or HTTPS proxy.
//
// The Address always carries the scheme prefix exactly as the user supplied
// it (for example "http://10.0.0.1:8080"); Scheme is the token extracted
// from that prefix, case kept as typed. Two proxies are considered identical
// when both fields match.
type Proxy struct {
	// Scheme is the proxy's URL scheme token, "http" or "https" when
	// supplied in lowercase.
	Scheme string `json:"scheme"`

	// Address is the full proxy URL as supplied, including the scheme prefix.
	Address string `json:"address"`
}

// String returns the proxy address for display.
// Reporter lines print the address, not the (scheme, address) pair.
func (p Proxy) String() string {
	return p.Address
}
