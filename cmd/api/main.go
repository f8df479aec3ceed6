// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the SnapDuel HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the access resolver and domain services.
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

	"github.com/taibuivan/snapduel/internal/api"
	"github.com/taibuivan/snapduel/internal/billing/entitlement"
	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/battle"
	"github.com/taibuivan/snapduel/internal/core/moderation"
	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/core/swipe"
	"github.com/taibuivan/snapduel/internal/platform/config"
	"github.com/taibuivan/snapduel/internal/platform/constants"
	"github.com/taibuivan/snapduel/internal/platform/migration"
	pgstore "github.com/taibuivan/snapduel/internal/platform/postgres"
	redisstore "github.com/taibuivan/snapduel/internal/platform/redis"
	"github.com/taibuivan/snapduel/internal/platform/sec"
	"github.com/taibuivan/snapduel/internal/users/account"
	"github.com/taibuivan/snapduel/internal/users/auth"
	"github.com/taibuivan/snapduel/internal/users/follow"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "snapduel"))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", string(cfg.Environment)),
		slog.String("port", cfg.HTTP.Port),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.Database.URL, pgstore.PoolOptions{
		MaxConns:           cfg.Database.MaxConns,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.Redis.URL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.Database.URL, cfg.Database.MigrationsDir, log), "run migrations")

	// ── 6. Identity ───────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Access Resolver ────────────────────────────────────────────────
	entitlementStore := access.NewBreakerStore(
		access.NewPostgresEntitlementStore(pool),
		access.BreakerSettings{
			ConsecutiveFailures: cfg.Resolver.BreakerFailures,
			OpenTimeout:         cfg.Resolver.BreakerTimeout,
		},
		log,
	)
	resolver := access.NewResolver(entitlementStore, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	photoRepository := photo.NewPostgresRepository(pool)
	photoService := photo.NewService(photoRepository, photo.NewRedisRankingCache(rdb), resolver, cfg.Redis.RankingTTL, log)

	battleService := battle.NewService(photoRepository, battle.NewPostgresRepository(pool, log), resolver, log,
		battle.WithPoolLimit(cfg.Selection.BattlePoolLimit))

	swipeService := swipe.NewService(photoRepository, swipe.NewPostgresRepository(pool), resolver, log,
		swipe.WithPoolMultiplier(cfg.Selection.DeckPoolMultiplier))

	authService := auth.NewService(auth.NewUserRepository(pool), jwtSvc, log)
	accountService := account.NewService(account.NewAccountRepository(pool), log)
	followService := follow.NewService(follow.NewPostgresRepository(pool), log)
	entitlementService := entitlement.NewService(entitlement.NewPostgresRepository(pool), log)
	moderationService := moderation.NewService(moderation.NewPostgresRepository(pool), photoService, log)

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		BreakerState:  func() string { return entitlementStore.State().String() },
	}, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        auth.NewHandler(authService),
		Account:     account.NewHandler(accountService),
		Follow:      follow.NewHandler(followService),
		Photo:       photo.NewHandler(photoService),
		Battle:      battle.NewHandler(battleService),
		Swipe:       swipe.NewHandler(swipeService),
		Entitlement: entitlement.NewHandler(entitlementService),
		Moderation:  moderation.NewHandler(moderationService),
		Bans:        accountService,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
