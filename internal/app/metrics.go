package app

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dshills/touchgesture/internal/gesture"
)

// Metrics counts the gestures claimed while the application runs.
type Metrics struct {
	counts [len(gesture.Kinds) + 1]atomic.Uint64

	durationTotalNs atomic.Int64
	durationMinNs   atomic.Int64
	durationMaxNs   atomic.Int64
	fingers         atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.durationMinNs.Store(1<<63 - 1)
	return m
}

// Record counts g.
func (m *Metrics) Record(g gesture.Gesture) {
	if !g.Kind.Valid() {
		return
	}
	m.counts[g.Kind].Add(1)
	m.fingers.Add(uint64(g.Fingers))

	ns := g.Duration.Nanoseconds()
	m.durationTotalNs.Add(ns)
	for {
		old := m.durationMinNs.Load()
		if ns >= old || m.durationMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.durationMaxNs.Load()
		if ns <= old || m.durationMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:   time.Since(m.startTime),
		Gestures: make(map[gesture.Kind]uint64, len(gesture.Kinds)),
		Fingers:  m.fingers.Load(),
		Max:      time.Duration(m.durationMaxNs.Load()),
	}
	for _, k := range gesture.Kinds {
		n := m.counts[k].Load()
		s.Gestures[k] = n
		s.Total += n
	}
	if s.Total > 0 {
		s.Avg = time.Duration(m.durationTotalNs.Load() / int64(s.Total))
		s.Min = time.Duration(m.durationMinNs.Load())
	}
	return s
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for i := range m.counts {
		m.counts[i].Store(0)
	}
	m.fingers.Store(0)
	m.durationTotalNs.Store(0)
	m.durationMinNs.Store(1<<63 - 1)
	m.durationMaxNs.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime   time.Duration
	Gestures map[gesture.Kind]uint64
	Total    uint64
	Fingers  uint64

	// Avg, Min and Max describe gesture durations.
	Avg time.Duration
	Min time.Duration
	Max time.Duration
}

// AvgFingers returns the mean finger count per gesture.
func (s MetricsSnapshot) AvgFingers() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Fingers) / float64(s.Total)
}

// String formats the non-zero counts in kind order, e.g.
// "3 gestures (tap=2 swipe-left=1)".
func (s MetricsSnapshot) String() string {
	var parts []string
	for _, k := range gesture.Kinds {
		if n := s.Gestures[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d gestures", s.Total)
	}
	return fmt.Sprintf("%d gestures (%s)", s.Total, strings.Join(parts, " "))
}
