// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Page render outcomes.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// IncPageRendered counts a page response; status is StatusSuccess or StatusError.
	IncPageRendered(status string)
	// ObserveUserCountDuration records how long the user count query took.
	ObserveUserCountDuration(duration time.Duration)
	// IncUserCountError counts failed user count queries.
	IncUserCountError()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
