// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres owns the pgx connection pool and the retrying transaction
// helper used by rating writes (see [InTx]).
package postgres

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/platform/constants"
)

const (
	// minConns stays warm so the first votes after a quiet period skip the handshake.
	minConns = 4

	maxConnLifetime   = 45 * time.Minute
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = 30 * time.Second
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second

	// lockTimeout bounds how long a rating transaction waits on FOR UPDATE.
	// A timeout surfaces as SQLSTATE 55P03 and is retried by [InTx].
	lockTimeout = 3 * time.Second
)

// PoolOptions sizes the pool and configures statement tracing.
type PoolOptions struct {
	MaxConns           int32
	SlowQueryThreshold time.Duration
}

/*
NewPool connects to PostgreSQL and verifies the connection.

Every physical connection gets a statement timeout tied to the request budget
and a lock timeout so that two hot photos cannot stall the pool.

# Parameters
  - context: Startup context for the first connection.
  - dsn: postgres:// URL or libpq keyword string.
  - options: [PoolOptions]
  - logger: Receives pool and slow statement events.
*/
func NewPool(context stdctx.Context, dsn string, options PoolOptions, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	// ── 1. Sizing ──
	poolConfig.MaxConns = max(options.MaxConns, minConns)
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	// ── 2. Tracing ──
	if options.SlowQueryThreshold > 0 {
		poolConfig.ConnConfig.Tracer = NewSlowQueryTracer(options.SlowQueryThreshold, logger)
	}

	// ── 3. Session settings ──
	poolConfig.AfterConnect = func(context stdctx.Context, connection *pgx.Conn) error {
		settings := fmt.Sprintf("SET statement_timeout = %d; SET lock_timeout = %d",
			constants.GlobalRequestTimeout.Milliseconds(), lockTimeout.Milliseconds())
		_, err := connection.Exec(context, settings)
		return err
	}

	connectCtx, cancel := stdctx.WithTimeout(context, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_ready",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
		slog.Duration("slow_query_threshold", options.SlowQueryThreshold),
	)

	return pool, nil
}

// Ping checks that the pool can reach the database.
func Ping(context stdctx.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
