package probe

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/proxyspray/internal/model"
)

// HTTPProber sends a single GET request through an upstream proxy and
// classifies the result.
//
// Certificate verification is disabled and redirects are not followed: the
// question being answered is "did the proxy forward this request", not
// "is the target well configured". Any response at all is a success, with
// one exception: a 403 almost always means the proxy itself refused to
// forward, so it is classified as a failure.
type HTTPProber struct {
	// timeout bounds each request. The zero value means no timeout,
	// which can block a worker forever on a hung connection.
	timeout time.Duration
}

// Option configures an HTTPProber.
type Option func(*HTTPProber)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *HTTPProber) {
		p.timeout = d
	}
}

// NewHTTPProber creates an HTTPProber with a 30 second default timeout.
func NewHTTPProber(opts ...Option) *HTTPProber {
	p := &HTTPProber{timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe issues one GET to target through proxy with the shared headers
// attached. It never returns an error: every outcome, including a
// malformed proxy URL, becomes a Result so the dispatcher can report it
// like any other probe.
func (p *HTTPProber) Probe(ctx context.Context, proxy model.Proxy, target string, headers map[string]string) model.Result {
	result := model.Result{Proxy: proxy, Target: target}

	proxyURL, err := url.Parse(proxy.Address)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	client := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // Reachability probe, not a trust decision
			},
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: p.timeout,
	}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	// A completed transaction with a 403 is still a failure: the proxy
	// accepted the connection but refused to forward the request.
	if resp.StatusCode == http.StatusForbidden {
		result.Error = "403 Forbidden Response"
		return result
	}

	result.Success = true
	return result
}
