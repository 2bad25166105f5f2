// Package router assembles the HTTP route table and global middleware.
package router

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hello-world/hello-world/internal/config"
	"github.com/hello-world/hello-world/internal/handler"
	"github.com/hello-world/hello-world/internal/metrics"
	"github.com/hello-world/hello-world/internal/middleware"
	"github.com/hello-world/hello-world/internal/urls"
)

// Route names.
const (
	RouteHelloWorld = handler.HelloWorldView
	RouteHealthz    = "healthz"
	RouteReadyz     = "readyz"
	RouteMetrics    = "metrics"
	RouteStatic     = "static"
)

// Deps are the collaborators the route table is built from.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Users    handler.UserCounter
	Renderer handler.Renderer
	// Metrics receives page events. Nil disables recording.
	Metrics metrics.Recorder
	// Snapshotter backs GET /metrics. Nil leaves the route unregistered.
	Snapshotter metrics.Snapshotter
	// Health lists the dependencies probed by GET /readyz.
	Health []handler.Dependency
	// Limiter enables per-IP rate limiting of the page when the config asks for it.
	Limiter middleware.IPLimiter
}

// Router is the application's http.Handler plus its named-route table.
type Router struct {
	mux  *chi.Mux
	urls *urls.Registry
}

// New builds the router. The static route exists only when Config.Debug is set.
func New(deps Deps) *Router {
	cfg := deps.Config
	logger := deps.Logger

	rt := &Router{
		mux:  chi.NewRouter(),
		urls: urls.NewRegistry(),
	}
	r := rt.mux

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: middleware.DefaultSecurityConfig().MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(middleware.DefaultSecurityConfig().MaxRequestBodySize))
	r.Use(chimiddleware.GetHead)

	h := handler.New(logger)
	healthHandler := handler.NewHealthHandler(logger, deps.Health...)
	helloWorld := handler.NewHelloWorldHandler(deps.Users, deps.Renderer, deps.Metrics, logger)

	rateLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  logger,
		Limiter: deps.Limiter,
		Enabled: cfg.RateLimitEnabled && deps.Limiter != nil,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	})

	rt.get(RouteHelloWorld, "/", rateLimit(handler.Handle(logger, helloWorld.Get)))
	rt.get(RouteHealthz, "/healthz", http.HandlerFunc(healthHandler.Healthz))
	rt.get(RouteReadyz, "/readyz", http.HandlerFunc(healthHandler.Readyz))

	if cfg.MetricsEnabled && deps.Snapshotter != nil {
		metricsHandler := handler.NewMetricsHandler(deps.Snapshotter)
		rt.get(RouteMetrics, "/metrics", http.HandlerFunc(metricsHandler.Metrics))
	}

	if cfg.Debug {
		prefix := config.NormalizeStaticURL(cfg.StaticURL)
		rt.get(RouteStatic, prefix+"*", staticFiles(cfg.StaticRoot))
		logger.Warn("serving static files from the app process",
			slog.String("static_url", prefix),
			slog.String("static_root", cfg.StaticRoot),
		)
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return rt
}

func (rt *Router) get(name, pattern string, h http.Handler) {
	rt.urls.Register(name, pattern)
	rt.mux.Method(http.MethodGet, pattern, h)
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

// Reverse returns the path of the named route, e.g. Reverse("hello-world") == "/".
func (rt *Router) Reverse(name string, params ...string) (string, error) {
	return rt.urls.Reverse(name, params...)
}

// Names lists the registered route names.
func (rt *Router) Names() []string {
	return rt.urls.Names()
}

// staticFiles serves regular files under root for the wildcard part of the
// route. Directories are reported as missing, so there are no listings and
// the bare prefix is a 404.
func staticFiles(root string) http.Handler {
	files := filesOnly{http.Dir(root)}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + chi.URLParam(r, "*"))

		file, err := files.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		http.ServeContent(w, r, info.Name(), info.ModTime(), file)
	})
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
