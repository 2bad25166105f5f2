package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/hello-world/hello-world/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "# TYPE hello_pages_rendered_total counter\n")
	writeMetric(w, "hello_pages_rendered_total{status=%q} %d\n", metrics.StatusSuccess, snap.PagesRendered)
	writeMetric(w, "hello_pages_rendered_total{status=%q} %d\n", metrics.StatusError, snap.PageErrors)

	writeMetric(w, "# TYPE hello_user_count_duration_seconds summary\n")
	writeMetric(w, "hello_user_count_duration_seconds_count %d\n", snap.UserCountDurationCount)
	writeMetric(w, "hello_user_count_duration_seconds_sum %.6f\n", float64(snap.UserCountDurationTotalNs)/1e9)

	writeMetric(w, "# TYPE hello_user_count_errors_total counter\n")
	writeMetric(w, "hello_user_count_errors_total %d\n", snap.UserCountErrors)
}

func writeMetric(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
