package input

import (
	"errors"
	"reflect"
	"testing"
)

// both is the default assumption set: try http and https.
var both = Assumption{HTTP: true, HTTPS: true}

// TestExpandTargetCIDR tests CIDR range expansion.
func TestExpandTargetCIDR(t *testing.T) {
	t.Parallel()

	t.Run("slash-30 with both assumptions yields 8 targets", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("10.0.0.0/30", both)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// Network and broadcast addresses included, http before https
		// for every address, address order preserved.
		want := []string{
			"http://10.0.0.0", "https://10.0.0.0",
			"http://10.0.0.1", "https://10.0.0.1",
			"http://10.0.0.2", "https://10.0.0.2",
			"http://10.0.0.3", "https://10.0.0.3",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("host bits are masked, not rejected", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("192.168.1.5/31", Assumption{HTTP: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"http://192.168.1.4", "http://192.168.1.5"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("slash-32 yields a single address", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("10.1.2.3/32", Assumption{HTTPS: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"https://10.1.2.3"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("malformed CIDR is fatal", func(t *testing.T) {
		t.Parallel()

		if _, err := ExpandTarget("banana/24", both); !errors.Is(err, ErrInvalidCIDR) {
			t.Errorf("expected ErrInvalidCIDR, got %v", err)
		}
	})

	t.Run("mask wider than 32 is fatal", func(t *testing.T) {
		t.Parallel()

		if _, err := ExpandTarget("10.0.0.0/33", both); !errors.Is(err, ErrInvalidCIDR) {
			t.Errorf("expected ErrInvalidCIDR, got %v", err)
		}
	})

	t.Run("IPv6 network is fatal", func(t *testing.T) {
		t.Parallel()

		if _, err := ExpandTarget("2001:db8::/32", both); !errors.Is(err, ErrInvalidCIDR) {
			t.Errorf("expected ErrInvalidCIDR, got %v", err)
		}
	})

	t.Run("three-digit suffix is not CIDR", func(t *testing.T) {
		t.Parallel()

		// /333 fails the CIDR pattern, so the value falls through to the
		// literal path and gains scheme prefixes.
		got, err := ExpandTarget("10.0.0.0/333", both)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"http://10.0.0.0/333", "https://10.0.0.0/333"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

// TestExpandTargetBareIP tests bare IPv4 address expansion.
func TestExpandTargetBareIP(t *testing.T) {
	t.Parallel()

	t.Run("both assumptions, http first", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("192.168.1.1", both)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"http://192.168.1.1", "https://192.168.1.1"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("http assumption only", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("192.168.1.1", Assumption{HTTP: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"http://192.168.1.1"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("both assumptions disabled yields nothing", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("192.168.1.1", Assumption{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no targets, got %v", got)
		}
	})
}

// TestExpandTargetLiteral tests literal URL and hostname expansion.
func TestExpandTargetLiteral(t *testing.T) {
	t.Parallel()

	t.Run("scheme-less hostname gains both variants", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("example.com", both)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"http://example.com", "https://example.com"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("https literal gains no http variant", func(t *testing.T) {
		t.Parallel()

		// "https" begins with "http", so the http assumption never fires
		// on an https literal. Compatibility quirk, covered on purpose.
		got, err := ExpandTarget("https://x", both)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"https://x"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected pass-through %v, got %v", want, got)
		}
	})

	t.Run("http literal passes through unchanged", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("http://x", both)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"http://x"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("uppercase scheme is not recognized", func(t *testing.T) {
		t.Parallel()

		// Prefix checks are case-sensitive, so an uppercase literal is
		// treated as scheme-less.
		got, err := ExpandTarget("HTTP://x", both)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"http://HTTP://x", "https://HTTP://x"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("assumptions disabled passes literal through", func(t *testing.T) {
		t.Parallel()

		got, err := ExpandTarget("example.com", Assumption{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"example.com"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected scheme-less pass-through %v, got %v", want, got)
		}
	})
}
