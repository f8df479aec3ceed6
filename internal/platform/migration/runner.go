// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations at startup,
// before any handler can touch the users, core or billing schemas.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty means a previous run failed halfway and needs a manual
// "migrate force" before the server can start.
var ErrDirty = errors.New("migration: database is dirty")

/*
RunUp applies every pending migration.

# Parameters
  - dsn: postgres:// or postgresql:// URL, the same one the pool uses.
  - migrationsPath: Directory holding NNNNNN_name.up.sql files.
  - logger: Receives progress; golang-migrate's own output is forwarded at debug level.
*/
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	databaseURL, err := driverURL(dsn)
	if err != nil {
		return err
	}

	absolute, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("migration: resolve %q: %w", migrationsPath, err)
	}

	migrator, err := migrate.New("file://"+filepath.ToSlash(absolute), databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if err := errors.Join(sourceErr, databaseErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	// ── 1. Current state ──
	from, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("%w at version %d", ErrDirty, from)
	}

	// ── 2. Apply ──
	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)

	return nil
}

// driverURL rewrites a postgres URL to the pgx5 scheme golang-migrate
// registers for the pgx v5 driver.
func driverURL(dsn string) (string, error) {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Scheme == "" {
		return "", fmt.Errorf("migration: DATABASE_URL must be a postgres:// URL")
	}

	switch parsed.Scheme {
	case "postgres", "postgresql", "pgx5":
		parsed.Scheme = "pgx5"
	default:
		return "", fmt.Errorf("migration: unsupported scheme %q", parsed.Scheme)
	}

	return parsed.String(), nil
}

// migrateLogger forwards golang-migrate output to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements [migrate.Logger].
func (adapter *migrateLogger) Printf(format string, args ...any) {
	adapter.logger.Debug("migration_progress", slog.String("detail", fmt.Sprintf(format, args...)))
}

// Verbose implements [migrate.Logger]; verbose output only when debug is on.
func (adapter *migrateLogger) Verbose() bool {
	return adapter.logger.Enabled(context.Background(), slog.LevelDebug)
}
