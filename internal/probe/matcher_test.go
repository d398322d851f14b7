package probe

import (
	"testing"

	"github.com/nao1215/proxyspray/internal/model"
)

// TestCompatible tests the scheme-compatibility predicate.
func TestCompatible(t *testing.T) {
	t.Parallel()

	httpProxy := model.Proxy{Scheme: "http", Address: "http://p1"}
	httpsProxy := model.Proxy{Scheme: "https", Address: "https://p1"}

	tests := []struct {
		name   string
		proxy  model.Proxy
		target string
		want   bool
	}{
		{"http proxy with http target", httpProxy, "http://t", true},
		{"https proxy with https target", httpsProxy, "https://t", true},
		{"http proxy with https target", httpProxy, "https://t", false},
		{"https proxy with http target", httpsProxy, "http://t", false},
		{"scheme-less target never matches", httpProxy, "t", false},
		{"scheme-less proxy address never matches", model.Proxy{Scheme: "http", Address: "p1"}, "http://t", false},
		{"empty target never matches", httpProxy, "", false},
		{"prefix extraction ignores separators", httpProxy, "httpfoo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Compatible(tt.proxy, tt.target); got != tt.want {
				t.Errorf("Compatible(%q, %q) = %v, want %v", tt.proxy.Address, tt.target, got, tt.want)
			}
		})
	}
}
