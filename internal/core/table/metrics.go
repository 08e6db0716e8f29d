package table

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stage names one step of the row pipeline.
type Stage int

const (
	StageSort Stage = iota
	StageSearch
	StageFilter
	StagePage
)

func (s Stage) String() string {
	switch s {
	case StageSort:
		return "sort"
	case StageSearch:
		return "search"
	case StageFilter:
		return "filter"
	case StagePage:
		return "page"
	default:
		return "unknown"
	}
}

// Metrics holds lightweight counters for pipeline activity.
type Metrics struct {
	// totals
	Recomputes atomic.Int64
	Debounced  atomic.Int64 // triggers armed on a debouncer

	mu        sync.Mutex
	runs      map[Stage]int64 // local executions
	callbacks map[Stage]int64 // delegated invocations
	durations map[Stage]time.Duration
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		runs:      make(map[Stage]int64),
		callbacks: make(map[Stage]int64),
		durations: make(map[Stage]time.Duration),
	}
}

// IncRun counts a local execution of s and accumulates its duration.
func (m *Metrics) IncRun(s Stage, d time.Duration) {
	m.mu.Lock()
	m.runs[s]++
	m.durations[s] += d
	m.mu.Unlock()
}

// IncCallback counts a delegated invocation of s.
func (m *Metrics) IncCallback(s Stage) {
	m.mu.Lock()
	m.callbacks[s]++
	m.mu.Unlock()
}

// MetricsSnapshot is a read-only copy of metrics state.
type MetricsSnapshot struct {
	Recomputes int64
	Debounced  int64
	Runs       map[Stage]int64
	Callbacks  map[Stage]int64
	Durations  map[Stage]time.Duration
}

// Snapshot returns a copy of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := MetricsSnapshot{
		Recomputes: m.Recomputes.Load(),
		Debounced:  m.Debounced.Load(),
		Runs:       make(map[Stage]int64, len(m.runs)),
		Callbacks:  make(map[Stage]int64, len(m.callbacks)),
		Durations:  make(map[Stage]time.Duration, len(m.durations)),
	}
	for k, v := range m.runs {
		s.Runs[k] = v
	}
	for k, v := range m.callbacks {
		s.Callbacks[k] = v
	}
	for k, v := range m.durations {
		s.Durations[k] = v
	}
	return s
}
