package database

import (
	"context"
	"testing"
	"time"

	"github.com/nao1215/proxyspray/internal/model"
)

// openTestDB opens a fresh HistoryDB in a temp dir.
func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()
	hdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := hdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return hdb
}

// testRun builds a run with a deterministic timeline and two results.
func testRun(start time.Time) *model.Run {
	return &model.Run{
		StartedAt:   start,
		FinishedAt:  start.Add(5 * time.Second),
		Window:      4,
		ProxyCount:  2,
		TargetCount: 3,
		Results: []model.Result{
			{
				Success:    true,
				Proxy:      model.Proxy{Scheme: "http", Address: "http://10.0.0.1:3128"},
				Target:     "http://intranet.example.com",
				StatusCode: 200,
			},
			{
				Proxy:  model.Proxy{Scheme: "https", Address: "https://10.0.0.2:8443"},
				Target: "https://intranet.example.com",
				Error:  "connection refused",
			},
		},
	}
}

// TestHistoryDBSaveAndGet tests the save/load round trip.
func TestHistoryDBSaveAndGet(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	id, err := hdb.SaveRun(ctx, testRun(start))
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero run id")
	}

	got, err := hdb.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if got == nil {
		t.Fatal("expected run, got nil")
	}

	if !got.StartedAt.Equal(start) {
		t.Errorf("expected start %s, got %s", start, got.StartedAt)
	}
	if got.Window != 4 || got.ProxyCount != 2 || got.TargetCount != 3 {
		t.Errorf("run parameters not preserved: %+v", got)
	}
	if len(got.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got.Results))
	}

	first := got.Results[0]
	if !first.Success || first.StatusCode != 200 || first.Proxy.Address != "http://10.0.0.1:3128" {
		t.Errorf("first result not preserved: %+v", first)
	}
	second := got.Results[1]
	if second.Success || second.Error != "connection refused" {
		t.Errorf("second result not preserved: %+v", second)
	}
	if second.Proxy.Scheme != "https" {
		t.Errorf("expected scheme preserved, got %q", second.Proxy.Scheme)
	}
}

// TestHistoryDBGetMissingRun tests the not-found contract.
func TestHistoryDBGetMissingRun(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)

	got, err := hdb.GetRun(context.Background(), 12345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

// TestHistoryDBListRuns tests most-recent-first listing without results.
func TestHistoryDBListRuns(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	older := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	if _, err := hdb.SaveRun(ctx, testRun(older)); err != nil {
		t.Fatal(err)
	}
	if _, err := hdb.SaveRun(ctx, testRun(newer)); err != nil {
		t.Fatal(err)
	}

	runs, err := hdb.ListRuns(ctx)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].StartedAt.Equal(newer) {
		t.Errorf("expected most recent run first, got %s", runs[0].StartedAt)
	}
	if len(runs[0].Results) != 0 {
		t.Errorf("expected listing without results, got %d", len(runs[0].Results))
	}
}

// TestHistoryDBEmptyRun tests saving a run that dispatched nothing.
func TestHistoryDBEmptyRun(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	run := testRun(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	run.Results = nil

	id, err := hdb.SaveRun(ctx, run)
	if err != nil {
		t.Fatalf("failed to save empty run: %v", err)
	}

	got, err := hdb.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if len(got.Results) != 0 {
		t.Errorf("expected no results, got %d", len(got.Results))
	}
}

// TestHistoryDBOpenWithoutCreate tests that mode=rw refuses a missing file.
func TestHistoryDBOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	opts := Options{CreateIfNotExists: false, EnableWAL: true}
	if _, err := Open(t.TempDir(), opts); err == nil {
		t.Error("expected error opening missing database without create")
	}
}

// TestHistoryDBPath tests the reported database path.
func TestHistoryDBPath(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	if hdb.Path() == "" {
		t.Error("expected non-empty database path")
	}
}
