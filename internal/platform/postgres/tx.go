// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/snapduel/internal/platform/dberr"
)

// ErrRetry can be returned by a transaction body to request a fresh attempt,
// e.g. when an optimistic version check matched no row.
var ErrRetry = errors.New("postgres: transaction should be retried")

// TxStarter is satisfied by *pgxpool.Pool and pgx.Tx.
type TxStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

/*
InTx runs fn inside a single transaction and commits when fn returns nil.

Serialization failures, deadlocks and [ErrRetry] roll back and re-run fn,
up to maxAttempts times in total. onRetry (optional) is called before each
new attempt. Any other error rolls back and is returned as-is.

Parameters:
  - ctx: context.Context (cancellation rolls back the open attempt)
  - db: TxStarter
  - maxAttempts: int (values below 1 are treated as 1)
  - onRetry: func(attempt int, err error)
  - fn: func(pgx.Tx) error

Returns:
  - error: the last attempt's error, or nil on commit
*/
func InTx(ctx context.Context, db TxStarter, maxAttempts int, onRetry func(attempt int, err error), fn func(tx pgx.Tx) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = runOnce(ctx, db, fn)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, ErrRetry) && !dberr.IsRetryable(lastErr) {
			return lastErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if onRetry != nil && attempt < maxAttempts {
			onRetry(attempt, lastErr)
		}
	}

	return lastErr
}

func runOnce(ctx context.Context, db TxStarter, fn func(tx pgx.Tx) error) error {
	transaction, err := db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer transaction.Rollback(ctx)

	if err := fn(transaction); err != nil {
		return err
	}

	return transaction.Commit(ctx)
}
