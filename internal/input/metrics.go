package input

import (
	"sync"
	"sync/atomic"
)

// Metrics tracks dispatch counters. Counters are atomic so reads from
// other goroutines never contend with the dispatch loop.
type Metrics struct {
	events    atomic.Uint64
	blocked   atomic.Uint64
	unmatched atomic.Uint64
	actions   atomic.Uint64
	consumed  atomic.Uint64

	mu       sync.RWMutex
	bySource map[string]*atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	// Events is the number of events entering HandleInput.
	Events uint64

	// Blocked is the number of events dropped by the blocking gate.
	Blocked uint64

	// Unmatched is the number of events no binding matched.
	Unmatched uint64

	// Actions is the number of action instances triggered.
	Actions uint64

	// Consumed is the number of events consumed by pre-event hooks.
	Consumed uint64

	// BySource counts events per source name.
	BySource map[string]uint64
}

// NewMetrics creates zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		bySource: make(map[string]*atomic.Uint64),
	}
}

// RecordEvent counts one incoming event for a source.
func (m *Metrics) RecordEvent(source string) {
	m.events.Add(1)

	m.mu.RLock()
	counter, ok := m.bySource[source]
	m.mu.RUnlock()

	if !ok {
		m.mu.Lock()
		counter, ok = m.bySource[source]
		if !ok {
			counter = &atomic.Uint64{}
			m.bySource[source] = counter
		}
		m.mu.Unlock()
	}
	counter.Add(1)
}

// RecordBlocked counts one event dropped by the blocking gate.
func (m *Metrics) RecordBlocked() {
	m.blocked.Add(1)
}

// RecordUnmatched counts one event no binding matched.
func (m *Metrics) RecordUnmatched() {
	m.unmatched.Add(1)
}

// RecordAction counts one triggered action instance.
func (m *Metrics) RecordAction() {
	m.actions.Add(1)
}

// RecordConsumed counts one event consumed by a pre-event hook.
func (m *Metrics) RecordConsumed() {
	m.consumed.Add(1)
}

// Snapshot returns a copy of every counter.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Events:    m.events.Load(),
		Blocked:   m.blocked.Load(),
		Unmatched: m.unmatched.Load(),
		Actions:   m.actions.Load(),
		Consumed:  m.consumed.Load(),
		BySource:  make(map[string]uint64),
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for source, counter := range m.bySource {
		snap.BySource[source] = counter.Load()
	}
	return snap
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.events.Store(0)
	m.blocked.Store(0)
	m.unmatched.Store(0)
	m.actions.Store(0)
	m.consumed.Store(0)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySource = make(map[string]*atomic.Uint64)
}
