package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const readinessTimeout = 5 * time.Second

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependency is a named backing service probed by Readyz.
type Dependency struct {
	Name    string
	Checker HealthChecker
	// Optional dependencies that are not configured report "disabled"
	// and do not fail readiness.
	Optional bool
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	logger *slog.Logger
	deps   []Dependency
}

// NewHealthHandler creates a new HealthHandler probing deps in order.
func NewHealthHandler(logger *slog.Logger, deps ...Dependency) *HealthHandler {
	return &HealthHandler{logger: logger, deps: deps}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe. It never touches dependencies.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz reports 200 only when every required dependency answers a ping.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	healthy := true

	for _, dep := range h.deps {
		result, ok := h.probe(ctx, dep)
		checks[dep.Name] = result
		healthy = healthy && ok
	}

	resp := HealthResponse{Status: "ok", Checks: checks}
	status := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// probe reports a failed ping as a bare "error"; the cause is only logged.
func (h *HealthHandler) probe(ctx context.Context, dep Dependency) (string, bool) {
	if dep.Checker == nil {
		if dep.Optional {
			return "disabled", true
		}
		return "not configured", false
	}
	if err := dep.Checker.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "readiness check failed",
			slog.String("dependency", dep.Name),
			slog.String("error", err.Error()),
		)
		return "error", false
	}
	return "ok", true
}
