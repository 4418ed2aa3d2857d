package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/dgallion1/parafind/internal/layout"
)

func TestLatencySnapshotPercentiles(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	for _, ms := range []int{100, 200, 300, 400, 500} {
		stats.record(time.Duration(ms)*time.Millisecond, 2, 3)
	}

	snap := stats.Snapshot()
	if snap.Searches != 5 {
		t.Fatalf("searches = %d, want 5", snap.Searches)
	}
	if snap.Documents != 10 || snap.Occurrences != 15 {
		t.Errorf("documents=%d occurrences=%d, want 10 and 15", snap.Documents, snap.Occurrences)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"min", snap.MinMs, 100},
		{"max", snap.MaxMs, 500},
		{"avg", snap.AvgMs, 300},
		{"p50", snap.P50Ms, 300},
		{"p95", snap.P95Ms, 480},
		{"p99", snap.P99Ms, 496},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %f, want %f", c.name, c.got, c.want)
		}
	}
}

func TestLatencyWindowExpires(t *testing.T) {
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stats := NewLatencyStats(time.Minute)
	stats.now = func() time.Time { return clock }

	stats.record(50*time.Millisecond, 1, 0)
	clock = clock.Add(2 * time.Minute)
	if snap := stats.Snapshot(); snap.Searches != 0 {
		t.Fatalf("expected expired window, got %d searches", snap.Searches)
	}

	stats.record(-time.Second, 1, 1)
	snap := stats.Snapshot()
	if snap.Searches != 1 || snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("negative duration not clamped: %+v", snap)
	}
}

func TestLatencyObserveSession(t *testing.T) {
	stats := NewLatencyStats(0)
	stats.Observe(nil)
	stats.Observe(&Session{
		Duration: 4 * time.Millisecond,
		Stats:    layout.Stats{DocumentsSearched: 3, TotalOccurrences: 7},
	})
	snap := stats.Snapshot()
	if snap.Searches != 1 || snap.Documents != 3 || snap.Occurrences != 7 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.P50Ms != 4 {
		t.Errorf("p50 = %f, want 4", snap.P50Ms)
	}
}
