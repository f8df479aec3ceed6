// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates pgx errors into [apperr.AppError] values so
// handlers never see SQLSTATE codes or driver messages.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
)

// ErrNotFound is returned for queries that matched no row.
var ErrNotFound = apperr.NotFound("Resource")

/*
Wrap classifies err for the caller.

  - pgx.ErrNoRows and foreign key violations become NotFound
  - unique violations become Conflict
  - check and not-null violations become Validation
  - everything else is an Upstream failure tagged with action
*/
func Wrap(err error, action string) error {
	if err == nil || apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if code, ok := Code(err); ok {
		switch code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict("Resource already exists")
			conflict.Cause = err
			return conflict
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound("Referenced resource")
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			invalid := apperr.ValidationError("Value violates a data constraint")
			invalid.Cause = err
			return invalid
		}
	}

	return apperr.Upstream(fmt.Errorf("%s: %w", action, err))
}

// Code extracts the SQLSTATE from err, if it carries one.
func Code(err error) (string, bool) {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return "", false
	}
	return pgError.Code, true
}

// IsRetryable reports whether the whole transaction can be replayed:
// serialization failures, deadlocks and lock timeouts.
func IsRetryable(err error) bool {
	code, ok := Code(err)
	if !ok {
		return false
	}
	return pgerrcode.IsTransactionRollback(code) || code == pgerrcode.LockNotAvailable
}
