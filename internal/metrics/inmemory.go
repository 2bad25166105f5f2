package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	PagesRendered            uint64
	PageErrors               uint64
	UserCountDurationCount   uint64
	UserCountDurationTotalNs int64
	UserCountErrors          uint64
}

// InMemoryRecorder keeps counters in process memory. It backs the /metrics
// endpoint and is used directly by tests.
type InMemoryRecorder struct {
	pagesRendered            atomic.Uint64
	pageErrors               atomic.Uint64
	userCountDurationCount   atomic.Uint64
	userCountDurationTotalNs atomic.Int64
	userCountErrors          atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		PagesRendered:            m.pagesRendered.Load(),
		PageErrors:               m.pageErrors.Load(),
		UserCountDurationCount:   m.userCountDurationCount.Load(),
		UserCountDurationTotalNs: m.userCountDurationTotalNs.Load(),
		UserCountErrors:          m.userCountErrors.Load(),
	}
}

// IncPageRendered increments the success or error page counter.
func (m *InMemoryRecorder) IncPageRendered(status string) {
	if status == StatusError {
		m.pageErrors.Add(1)
		return
	}
	m.pagesRendered.Add(1)
}

// ObserveUserCountDuration records count query duration.
func (m *InMemoryRecorder) ObserveUserCountDuration(duration time.Duration) {
	m.userCountDurationCount.Add(1)
	m.userCountDurationTotalNs.Add(duration.Nanoseconds())
}

// IncUserCountError increments the failed count query counter.
func (m *InMemoryRecorder) IncUserCountError() {
	m.userCountErrors.Add(1)
}
