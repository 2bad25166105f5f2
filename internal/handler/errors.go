package handler

import (
	"log/slog"
	"net/http"

	"github.com/hello-world/hello-world/internal/middleware"
)

// AppHandler is an HTTP handler that reports failure by returning an error
// instead of writing an error response itself.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn into an http.HandlerFunc. A returned error is logged and
// answered with a generic 500; no detail reaches the client.
// fn must not have written anything before returning an error.
func Handle(logger *slog.Logger, fn AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		logger.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)

		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
