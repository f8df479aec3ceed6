// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the client behind the photo ranking cache.

Only derived, rebuildable data lives here. Entitlements are resolved against
PostgreSQL on every request and are never cached.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// clientName shows up in CLIENT LIST on the server.
	clientName = "snapduel-ranking"

	// The ranking cache is a best-effort read path, so timeouts are short:
	// a slow cache is worse than a miss that falls through to PostgreSQL.
	dialTimeout  = 2 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	poolTimeout  = time.Second
	pingTimeout  = 2 * time.Second

	poolSize     = 16
	minIdleConns = 2
)

/*
NewClient parses redisURL, instruments the client and checks connectivity.

# Parameters
  - context: Startup context for the first ping.
  - redisURL: redis:// or rediss:// URL.
  - logger: Receives connection events.
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ClientName = clientName
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.PoolTimeout = poolTimeout
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	// Cache reads are idempotent; one retry absorbs a dropped connection.
	options.MaxRetries = 1

	client := redis.NewClient(options)
	client.AddHook(metricsHook{})

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_ready",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping checks that Redis answers within [pingTimeout].
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
