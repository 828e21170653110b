package api

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLatencyRing is the default capacity of the latency ring buffer.
const DefaultLatencyRing = 10000

// SlowCallMs is the threshold above which a backend call is logged as slow.
const SlowCallMs = 500.0

// callSample is a single backend call timing record.
type callSample struct {
	Route      string // "GET /vuelos"
	Status     int    // HTTP status (0 on transport failure)
	DurationMs float64
	At         time.Time
}

// LatencyRecorder is a fixed-size ring buffer of backend call timings.
// Writes are non-blocking; when full, oldest samples are overwritten.
// Aggregation happens only on read (Snapshot).
type LatencyRecorder struct {
	mu      sync.Mutex
	samples []callSample
	size    int
	pos     int
	total   int64
}

// NewLatencyRecorder creates a recorder with the given ring capacity.
func NewLatencyRecorder(size int) *LatencyRecorder {
	if size <= 0 {
		size = DefaultLatencyRing
	}
	return &LatencyRecorder{
		samples: make([]callSample, size),
		size:    size,
	}
}

// record appends a sample. Lock hold time is a single index increment plus
// a struct copy.
func (r *LatencyRecorder) record(s callSample) {
	r.mu.Lock()
	r.samples[r.pos] = s
	r.pos = (r.pos + 1) % r.size
	r.mu.Unlock()
	atomic.AddInt64(&r.total, 1)
}

// TotalCalls returns the number of backend calls ever recorded.
func (r *LatencyRecorder) TotalCalls() int64 {
	return atomic.LoadInt64(&r.total)
}

// RouteStat aggregates timing for one backend route.
type RouteStat struct {
	Route   string  `json:"ruta"`
	AvgMs   float64 `json:"promedio_ms"`
	MaxMs   float64 `json:"maximo_ms"`
	Count   int     `json:"llamadas"`
	TotalMs float64 `json:"total_ms"`
}

// LatencySnapshot holds aggregated backend latency computed on read.
type LatencySnapshot struct {
	TotalCalls    int64       `json:"total_llamadas"`
	P50Ms         float64     `json:"p50_ms"`
	P95Ms         float64     `json:"p95_ms"`
	P99Ms         float64     `json:"p99_ms"`
	Failures      int         `json:"fallas_transporte"`
	SlowestRoutes []RouteStat `json:"rutas_lentas"`
}

// Snapshot computes aggregated stats from the ring buffer. This sorts and
// should only be called on diagnostics page load, never per request.
func (r *LatencyRecorder) Snapshot(since time.Time, topN int) LatencySnapshot {
	r.mu.Lock()
	buf := make([]callSample, r.size)
	copy(buf, r.samples)
	r.mu.Unlock()

	var durations []float64
	failures := 0
	byRoute := make(map[string]*RouteStat)

	for _, s := range buf {
		if s.At.IsZero() || s.At.Before(since) {
			continue
		}
		durations = append(durations, s.DurationMs)
		if s.Status == 0 {
			failures++
		}
		stat, ok := byRoute[s.Route]
		if !ok {
			stat = &RouteStat{Route: s.Route}
			byRoute[s.Route] = stat
		}
		stat.Count++
		stat.TotalMs += s.DurationMs
		if s.DurationMs > stat.MaxMs {
			stat.MaxMs = s.DurationMs
		}
	}

	for _, stat := range byRoute {
		stat.AvgMs = stat.TotalMs / float64(stat.Count)
	}

	snap := LatencySnapshot{
		TotalCalls:    r.TotalCalls(),
		Failures:      failures,
		SlowestRoutes: topRoutesByAvg(byRoute, topN),
	}
	if len(durations) > 0 {
		sort.Float64s(durations)
		snap.P50Ms = percentile(durations, 50)
		snap.P95Ms = percentile(durations, 95)
		snap.P99Ms = percentile(durations, 99)
	}
	return snap
}

// percentile returns the p-th percentile from a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// topRoutesByAvg returns the top N routes by average duration, descending.
func topRoutesByAvg(stats map[string]*RouteStat, n int) []RouteStat {
	list := make([]RouteStat, 0, len(stats))
	for _, s := range stats {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
