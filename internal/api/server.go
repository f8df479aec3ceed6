// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the HTTP composition root: it assembles the middleware chain,
mounts every domain handler under /api/v1 and owns the [http.Server]
lifecycle.

Route map:

	GET  /health, /ready, /metrics
	/api/v1/auth           register, login, me, change-password
	/api/v1/users          profiles, owner photos, follow edges, bans
	/api/v1/photos         catalog, rankings, tags
	/api/v1/battles        pair selection, comparisons (vote limited)
	/api/v1/swipe          deck, judgments (vote limited)
	/api/v1/entitlements   subscriptions, purchases
	/api/v1/reports        photo reports, moderator queue
	/api/v1/access/resolve batch access decisions

Banned members may still read; writes under /photos, /battles, /swipe,
/reports and the follow routes are refused.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/snapduel/internal/billing/entitlement"
	"github.com/taibuivan/snapduel/internal/core/battle"
	"github.com/taibuivan/snapduel/internal/core/moderation"
	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/core/swipe"
	"github.com/taibuivan/snapduel/internal/platform/config"
	"github.com/taibuivan/snapduel/internal/platform/constants"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/middleware"
	"github.com/taibuivan/snapduel/internal/platform/sec"
	"github.com/taibuivan/snapduel/internal/users/account"
	"github.com/taibuivan/snapduel/internal/users/auth"
	"github.com/taibuivan/snapduel/internal/users/follow"
)

// Handlers is the set of domain handlers the router mounts.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth        *auth.Handler
	Account     *account.Handler
	Follow      *follow.Handler
	Photo       *photo.Handler
	Battle      *battle.Handler
	Swipe       *swipe.Handler
	Entitlement *entitlement.Handler
	Moderation  *moderation.Handler

	// Bans backs the write guard; nil disables it.
	Bans middleware.BanChecker
}

// Server owns the router and the listener.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

/*
NewServer builds the router and the [http.Server] around it.

Description: The limiters start janitor goroutines bound to context, so the
caller cancels it on shutdown.
*/
func NewServer(context context.Context, cfg *config.Config, logger *slog.Logger, verifier middleware.TokenVerifier, handlers Handlers) *Server {
	router := chi.NewRouter()

	// ── 1. Global chain ──
	global := middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(logger),
		chimw.Timeout(constants.GlobalRequestTimeout),
		global.Middleware,
		middleware.PanicRecovery(logger),
		middleware.Authenticate(verifier),
		middleware.CORS(cfg),
		chimw.CleanPath,
	)

	// ── 2. Health ──
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)
	router.Handle("/metrics", metrics.Handler())

	// ── 3. API ──
	votes := middleware.NewRateLimiter(context, constants.VotesPerMinute/60.0, constants.VoteBurst,
		middleware.WithName("votes"),
		middleware.WithKey(middleware.ByViewer),
		middleware.WithMethods(http.MethodPost),
	)
	router.Route("/api/v1", func(v1 chi.Router) {
		mountAPI(v1, handlers, votes.Middleware)
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.HTTP.Port,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

// mountAPI registers the versioned routes. voteLimit guards the write paths
// that move ratings.
func mountAPI(v1 chi.Router, handlers Handlers, voteLimit func(http.Handler) http.Handler) {
	banGuard := func(next http.Handler) http.Handler { return next }
	if handlers.Bans != nil {
		banGuard = middleware.BlockBanned(handlers.Bans)
	}

	v1.Mount("/auth", handlers.Auth.Routes())
	v1.Mount("/entitlements", handlers.Entitlement.Routes())

	v1.With(banGuard).Mount("/photos", handlers.Photo.Routes())
	v1.With(banGuard).Mount("/reports", handlers.Moderation.Routes())
	v1.With(banGuard, voteLimit).Mount("/battles", handlers.Battle.Routes())
	v1.With(banGuard, voteLimit).Mount("/swipe", handlers.Swipe.Routes())

	v1.Post("/access/resolve", handlers.Photo.ResolveAccess)

	v1.Route("/users", func(users chi.Router) {
		users.Get("/{id}", handlers.Account.GetProfile)
		users.Get("/{id}/photos", handlers.Photo.ListByOwner)

		users.Group(func(member chi.Router) {
			member.Use(middleware.RequireAuth, banGuard)
			member.Patch("/me", handlers.Account.UpdateMe)
			member.Post("/{id}/follow", handlers.Follow.Follow)
			member.Delete("/{id}/follow", handlers.Follow.Unfollow)
		})

		users.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			admin.Put("/{id}/ban", handlers.Account.Ban)
			admin.Delete("/{id}/ban", handlers.Account.Unban)
		})
	})
}

// Handler returns the root router.
func (server *Server) Handler() http.Handler {
	return server.router
}

// ListenAndServe blocks until the listener stops.
func (server *Server) ListenAndServe() error {
	server.logger.Info("server_starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests for at most timeout.
func (server *Server) Shutdown(timeout time.Duration) error {
	deadline, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(deadline)
}
