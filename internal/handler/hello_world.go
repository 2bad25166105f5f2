package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hello-world/hello-world/internal/metrics"
	"github.com/hello-world/hello-world/internal/render"
)

const (
	// HelloWorldView is the route name of the hello-world page.
	HelloWorldView = "hello-world"
	// HelloWorldTemplate is the template the page renders.
	HelloWorldTemplate = "hello_world/hello_world.html"
)

// UserCounter counts registered users. Implemented by *repository.Repository.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// Renderer writes a named template as an HTTP response. Implemented by *render.Renderer.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data render.Context) error
}

// HelloWorldHandler serves the hello-world page: a greeting plus the number
// of registered users.
type HelloWorldHandler struct {
	users    UserCounter
	renderer Renderer
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// NewHelloWorldHandler creates a new HelloWorldHandler.
func NewHelloWorldHandler(users UserCounter, renderer Renderer, recorder metrics.Recorder, logger *slog.Logger) *HelloWorldHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &HelloWorldHandler{
		users:    users,
		renderer: renderer,
		metrics:  recorder,
		logger:   logger,
	}
}

// UserCount returns the current number of users. It always queries storage.
func (h *HelloWorldHandler) UserCount(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := h.users.CountUsers(ctx)
	h.metrics.ObserveUserCountDuration(time.Since(start))
	if err != nil {
		h.metrics.IncUserCountError()
		return 0, err
	}
	return count, nil
}

// HelloWorldContext extends the base view context with user_count.
func HelloWorldContext(r *http.Request, userCount int64) render.Context {
	data := render.BaseContext(r, HelloWorldView)
	data["user_count"] = userCount
	return data
}

// ContextData builds the full template context for a request.
func (h *HelloWorldHandler) ContextData(r *http.Request) (render.Context, error) {
	count, err := h.UserCount(r.Context())
	if err != nil {
		return nil, err
	}
	return HelloWorldContext(r, count), nil
}

// Get renders the page.
//
// GET /
func (h *HelloWorldHandler) Get(w http.ResponseWriter, r *http.Request) error {
	data, err := h.ContextData(r)
	if err != nil {
		h.metrics.IncPageRendered(metrics.StatusError)
		return err
	}

	if err := h.renderer.Render(w, http.StatusOK, HelloWorldTemplate, data); err != nil {
		h.metrics.IncPageRendered(metrics.StatusError)
		return err
	}

	h.metrics.IncPageRendered(metrics.StatusSuccess)
	return nil
}

// ServeHTTP makes the handler usable as a plain http.Handler, routing errors
// through Handle.
func (h *HelloWorldHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	Handle(h.logger, h.Get)(w, r)
}
