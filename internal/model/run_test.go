package model

import (
	"testing"
	"time"
)

// TestRunSummarize tests aggregate counting over run results.
func TestRunSummarize(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("mixed results", func(t *testing.T) {
		t.Parallel()

		run := &Run{
			StartedAt:  start,
			FinishedAt: start.Add(90 * time.Second),
			Results: []Result{
				{Success: true},
				{Success: false},
				{Success: true},
			},
		}

		s := run.Summarize()
		if s.Attempted != 3 {
			t.Errorf("expected 3 attempted, got %d", s.Attempted)
		}
		if s.Succeeded != 2 {
			t.Errorf("expected 2 succeeded, got %d", s.Succeeded)
		}
		if s.Failed != 1 {
			t.Errorf("expected 1 failed, got %d", s.Failed)
		}
		if s.Elapsed != 90*time.Second {
			t.Errorf("expected 90s elapsed, got %s", s.Elapsed)
		}
	})

	t.Run("empty run", func(t *testing.T) {
		t.Parallel()

		run := &Run{StartedAt: start, FinishedAt: start}
		s := run.Summarize()
		if s.Attempted != 0 || s.Succeeded != 0 || s.Failed != 0 {
			t.Errorf("expected zero counts, got %+v", s)
		}
		if s.Elapsed != 0 {
			t.Errorf("expected zero elapsed, got %s", s.Elapsed)
		}
	})
}

// TestProxyString tests the proxy's display form.
func TestProxyString(t *testing.T) {
	t.Parallel()

	p := Proxy{Scheme: "http", Address: "http://10.0.0.1:3128"}
	if got := p.String(); got != "http://10.0.0.1:3128" {
		t.Errorf("expected address as string form, got %q", got)
	}
}
