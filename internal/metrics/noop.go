package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncPageRendered is a no-op.
func (n *NoopRecorder) IncPageRendered(status string) {}

// ObserveUserCountDuration is a no-op.
func (n *NoopRecorder) ObserveUserCountDuration(duration time.Duration) {}

// IncUserCountError is a no-op.
func (n *NoopRecorder) IncUserCountError() {}
