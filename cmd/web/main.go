// Package main is the entrypoint for the hello-world web server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hello-world/hello-world/internal/cache"
	"github.com/hello-world/hello-world/internal/config"
	"github.com/hello-world/hello-world/internal/handler"
	"github.com/hello-world/hello-world/internal/metrics"
	"github.com/hello-world/hello-world/internal/middleware"
	"github.com/hello-world/hello-world/internal/render"
	"github.com/hello-world/hello-world/internal/repository"
	"github.com/hello-world/hello-world/internal/router"
	"github.com/hello-world/hello-world/internal/server"
)

const cacheKeyPrefix = "hello:"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return err
	}
	logger.Info("connected to database")

	health := []handler.Dependency{{Name: "postgres", Checker: repo}}

	// Redis only backs rate limiting, so it stays optional.
	var limiter middleware.IPLimiter
	redisDep := handler.Dependency{Name: "redis", Optional: true}
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL, cacheKeyPrefix)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			repo.Close()
			return err
		}
		logger.Info("connected to Redis")
		limiter = cacheClient
		redisDep.Checker = cacheClient
	}
	health = append(health, redisDep)

	renderer, err := render.New(render.Options{
		Dir:       cfg.TemplateDir,
		Debug:     cfg.Debug,
		Minify:    cfg.MinifyHTML,
		StaticURL: cfg.StaticURL,
	})
	if err != nil {
		logger.Error("failed to load templates", slog.String("error", err.Error()))
		repo.Close()
		if cacheClient != nil {
			_ = cacheClient.Close()
		}
		return err
	}

	var (
		recorder    metrics.Recorder = metrics.NewNoop()
		snapshotter metrics.Snapshotter
	)
	if cfg.MetricsEnabled {
		inMemory := metrics.NewInMemory()
		recorder, snapshotter = inMemory, inMemory
	}

	rt := router.New(router.Deps{
		Config:      cfg,
		Logger:      logger,
		Users:       repo,
		Renderer:    renderer,
		Metrics:     recorder,
		Snapshotter: snapshotter,
		Health:      health,
		Limiter:     limiter,
	})

	srv := server.New(rt, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		slog.Int("port", cfg.AppPort),
		slog.String("env", cfg.AppEnv),
		slog.Bool("debug", cfg.Debug),
		slog.Any("routes", rt.Names()),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}
	return nil
}
