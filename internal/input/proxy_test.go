package input

import (
	"errors"
	"testing"

	"github.com/nao1215/proxyspray/internal/model"
)

// TestParseProxy tests proxy string parsing.
func TestParseProxy(t *testing.T) {
	t.Parallel()

	t.Run("http proxy", func(t *testing.T) {
		t.Parallel()

		p, err := ParseProxy("http://127.0.0.1:8080")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Scheme != "http" {
			t.Errorf("expected scheme 'http', got %q", p.Scheme)
		}
		if p.Address != "http://127.0.0.1:8080" {
			t.Errorf("expected address to keep the raw string, got %q", p.Address)
		}
	})

	t.Run("https proxy", func(t *testing.T) {
		t.Parallel()

		p, err := ParseProxy("https://proxy.example.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Scheme != "https" {
			t.Errorf("expected scheme 'https', got %q", p.Scheme)
		}
	})

	t.Run("prefix match is case-insensitive and scheme keeps its case", func(t *testing.T) {
		t.Parallel()

		p, err := ParseProxy("HTTP://127.0.0.1:8080")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Scheme != "HTTP" {
			t.Errorf("expected scheme 'HTTP' as typed, got %q", p.Scheme)
		}
	})

	t.Run("missing scheme is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseProxy("127.0.0.1:8080"); !errors.Is(err, ErrInvalidProxy) {
			t.Errorf("expected ErrInvalidProxy, got %v", err)
		}
	})

	t.Run("unsupported scheme is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseProxy("socks5://127.0.0.1:1080"); !errors.Is(err, ErrInvalidProxy) {
			t.Errorf("expected ErrInvalidProxy, got %v", err)
		}
	})

	t.Run("empty string is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseProxy(""); !errors.Is(err, ErrInvalidProxy) {
			t.Errorf("expected ErrInvalidProxy, got %v", err)
		}
	})
}

// TestProxySet tests ordered, deduplicated proxy accumulation.
func TestProxySet(t *testing.T) {
	t.Parallel()

	t.Run("duplicate insert leaves size unchanged", func(t *testing.T) {
		t.Parallel()

		set := NewProxySet()
		p := model.Proxy{Scheme: "http", Address: "http://p1"}

		if !set.Add(p) {
			t.Error("expected first insert to succeed")
		}
		if set.Add(p) {
			t.Error("expected duplicate insert to be a no-op")
		}
		if set.Len() != 1 {
			t.Errorf("expected size 1, got %d", set.Len())
		}
	})

	t.Run("same address with different scheme is distinct", func(t *testing.T) {
		t.Parallel()

		set := NewProxySet()
		set.Add(model.Proxy{Scheme: "http", Address: "p"})
		set.Add(model.Proxy{Scheme: "https", Address: "p"})

		if set.Len() != 2 {
			t.Errorf("expected size 2, got %d", set.Len())
		}
	})

	t.Run("iteration preserves insertion order", func(t *testing.T) {
		t.Parallel()

		set := NewProxySet()
		addrs := []string{"http://p3", "http://p1", "http://p2"}
		for _, a := range addrs {
			set.Add(model.Proxy{Scheme: "http", Address: a})
		}

		got := set.Proxies()
		for i, a := range addrs {
			if got[i].Address != a {
				t.Errorf("position %d: expected %q, got %q", i, a, got[i].Address)
			}
		}
	})
}
