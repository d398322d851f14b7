package probe

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/nao1215/proxyspray/internal/model"
	"golang.org/x/sync/errgroup"
)

// preflightTimeout bounds each preflight dial. It is short because this is
// only a TCP connectivity check, not a request through the proxy.
const preflightTimeout = 2 * time.Second

// PreflightResult is the outcome of dialing one proxy endpoint.
type PreflightResult struct {
	Proxy     model.Proxy
	Reachable bool
	Err       string
}

// Preflight dials every proxy's TCP endpoint concurrently and reports which
// ones cannot be reached. It is informational: unreachable proxies still
// participate in the run, the check just surfaces dead endpoints before
// minutes of paced dispatching are spent on them.
//
// Results are returned in proxy order. Concurrency is bounded the same way
// the dispatcher bounds probes, so preflight never opens more simultaneous
// connections than the run itself would.
func Preflight(ctx context.Context, proxies []model.Proxy, concurrency int) []PreflightResult {
	results := make([]PreflightResult, len(proxies))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, p := range proxies {
		g.Go(func() error {
			results[i] = dialProxy(ctx, p)
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // Workers only record results, never fail
	return results
}

// dialProxy attempts a TCP connection to the proxy's host and port.
// A missing port falls back to the scheme default (80 or 443).
func dialProxy(ctx context.Context, p model.Proxy) PreflightResult {
	result := PreflightResult{Proxy: p}

	u, err := url.Parse(p.Address)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	host := u.Host
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}

	dialer := &net.Dialer{Timeout: preflightTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	_ = conn.Close() //nolint:errcheck // Connectivity check only

	result.Reachable = true
	return result
}
