package model

// Result is the outcome of a single probe: one GET request issued through
// Proxy to Target. A Result is immutable once produced and is consumed
// exactly once by the reporter.
type Result struct {
	// Success is true when the request completed with any status other
	// than 403 Forbidden. Transport errors and 403 responses are failures.
	Success bool `json:"success"`

	// Proxy is the upstream proxy the request was routed through.
	Proxy Proxy `json:"proxy"`

	// Target is the URL the request was sent to.
	Target string `json:"target"`

	// StatusCode is the HTTP response status, or zero when the request
	// never completed.
	StatusCode int `json:"status_code,omitempty"`

	// Error describes why the probe failed. Empty on success.
	// A 403 response is recorded here as a synthesized error even though
	// the HTTP transaction itself completed.
	Error string `json:"error,omitempty"`
}
