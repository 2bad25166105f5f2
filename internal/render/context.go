package render

import (
	"net/http"

	"github.com/hello-world/hello-world/internal/middleware"
)

// BaseContext returns the view metadata every page starts from. Handlers add
// their own keys on top.
func BaseContext(r *http.Request, viewName string) Context {
	return Context{
		"view":         viewName,
		"request_path": r.URL.Path,
		"request_id":   middleware.GetRequestID(r.Context()),
	}
}
