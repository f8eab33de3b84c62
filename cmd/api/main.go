// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Mosaic HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the link registry and the composition services.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/mosaic/internal/api"
	"github.com/taibuivan/mosaic/internal/component"
	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/page"
	"github.com/taibuivan/mosaic/internal/platform/config"
	"github.com/taibuivan/mosaic/internal/platform/constants"
	"github.com/taibuivan/mosaic/internal/platform/migration"
	pgstore "github.com/taibuivan/mosaic/internal/platform/postgres"
	redisstore "github.com/taibuivan/mosaic/internal/platform/redis"
	"github.com/taibuivan/mosaic/internal/platform/sec"
	"github.com/taibuivan/mosaic/internal/render"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String(constants.FieldApp, constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lifetime context for background workers (rate limiter cleanup, invalidation listener).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Verification ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Link Registry ──────────────────────────────────────────────────
	pageRepository := page.NewPostgresRepository(pool)

	registry := link.NewRegistry(log)
	must(log, registry.Register(page.ObjectType, link.NewCachedResolver(page.NewResolver(pageRepository), cfg.ResolverCacheTTL)), "register page resolver")
	registry.Seal()

	// ── 9. Composition ────────────────────────────────────────────────────
	layoutRepository := layout.NewPostgresRepository(pool)
	catalog := layout.NewRegionCatalog(layoutRepository, log)

	loaders := layout.Loaders{}
	component.RegisterLoaders(loaders, component.NewPostgresRepository(pool), registry)
	composer := layout.NewComposer(catalog, loaders, log)

	invalidator := layout.NewRedisInvalidator(rdb, cfg.RegionInvalidationChannel, catalog, log)
	go func() {
		if err := invalidator.Listen(appCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("region_invalidation_listener_stopped", slog.Any("error", err))
		}
	}()

	layoutService := layout.NewService(layoutRepository, catalog, loaders, invalidator, log)
	pageService := page.NewService(pageRepository, layoutRepository, layoutRepository, catalog, composer, cfg.DefaultLayoutSlug, log)

	// ── 10. Templates ─────────────────────────────────────────────────────
	// HTML pages are only served when a template directory is configured.
	var renderer page.Renderer
	if cfg.TemplateDir != "" {
		engine, err := render.New(os.DirFS(cfg.TemplateDir), registry, log)
		must(log, err, "load templates")
		renderer = engine
	}

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Link:      link.NewHandler(registry),
		Layout:    layout.NewHandler(layoutService),
		Page:      page.NewHandler(pageService, renderer),
	}

	server := api.NewServer(appCtx, cfg, log, tokens, handlers)

	// ── 12. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
