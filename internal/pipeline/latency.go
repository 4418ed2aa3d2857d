package pipeline

import (
	"slices"
	"sync"
	"time"
)

type observation struct {
	at          time.Time
	elapsed     time.Duration
	documents   int
	occurrences int
}

// LatencySnapshot aggregates the searches still inside the window.
type LatencySnapshot struct {
	Searches    int     `json:"searches"`
	Documents   int     `json:"documents_searched"`
	Occurrences int     `json:"occurrences"`
	MinMs       float64 `json:"min_ms"`
	MaxMs       float64 `json:"max_ms"`
	AvgMs       float64 `json:"avg_ms"`
	P50Ms       float64 `json:"p50_ms"`
	P95Ms       float64 `json:"p95_ms"`
	P99Ms       float64 `json:"p99_ms"`
}

// LatencyStats keeps a rolling window of completed searches. It is the only
// shared state in the package and is safe for concurrent use.
type LatencyStats struct {
	mu     sync.Mutex
	window time.Duration
	obs    []observation
	now    func() time.Time
}

func NewLatencyStats(window time.Duration) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LatencyStats{window: window, obs: make([]observation, 0, 128), now: time.Now}
}

// Observe records a finished session.
func (l *LatencyStats) Observe(s *Session) {
	if s == nil {
		return
	}
	l.record(s.Duration, s.Stats.DocumentsSearched, s.Stats.TotalOccurrences)
}

func (l *LatencyStats) record(d time.Duration, docs, occ int) {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.expire(now)
	l.obs = append(l.obs, observation{at: now, elapsed: d, documents: docs, occurrences: occ})
}

func (l *LatencyStats) Snapshot() LatencySnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expire(l.now())
	if len(l.obs) == 0 {
		return LatencySnapshot{}
	}

	ms := make([]float64, len(l.obs))
	var snap LatencySnapshot
	var total float64
	for i, o := range l.obs {
		ms[i] = float64(o.elapsed) / float64(time.Millisecond)
		total += ms[i]
		snap.Documents += o.documents
		snap.Occurrences += o.occurrences
	}
	slices.Sort(ms)

	snap.Searches = len(ms)
	snap.MinMs = ms[0]
	snap.MaxMs = ms[len(ms)-1]
	snap.AvgMs = total / float64(len(ms))
	snap.P50Ms = interpolate(ms, 50)
	snap.P95Ms = interpolate(ms, 95)
	snap.P99Ms = interpolate(ms, 99)
	return snap
}

// expire drops observations older than the window. Callers hold mu.
func (l *LatencyStats) expire(now time.Time) {
	cutoff := now.Add(-l.window)
	l.obs = slices.DeleteFunc(l.obs, func(o observation) bool { return o.at.Before(cutoff) })
}

// interpolate returns the pct-th percentile of sorted using linear
// interpolation between closest ranks.
func interpolate(sorted []float64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return sorted[0]
	case pct >= 100:
		return sorted[len(sorted)-1]
	}
	rank := float64(len(sorted)-1) * pct / 100
	lo := int(rank)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
