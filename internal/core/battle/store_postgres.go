// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/database/schema"
	"github.com/taibuivan/snapduel/internal/platform/dberr"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

// lockedRating is a photo row held under FOR UPDATE.
type lockedRating struct {
	rating  int
	version int64
	status  photo.Status
}

/*
ApplyOutcome runs the comparison transaction.

Description:
 1. Lock both photo rows in id order so concurrent recorders cannot deadlock.
 2. Compute new ratings from the locked values.
 3. Write each rating with a version check; a miss restarts the transaction.
 4. Append the outcome row.

Retries are bounded; exhaustion surfaces as a retryable Upstream error.
*/
func (repository *PostgresRepository) ApplyOutcome(context context.Context, outcome Outcome, apply RatingFunc) (Result, error) {
	var result Result

	onRetry := func(attempt int, err error) {
		metrics.RatingRetriesTotal.Inc()
		repository.logger.WarnContext(context, "rating_transaction_retry",
			slog.Int("attempt", attempt),
			slog.String("winner_id", outcome.WinnerID),
			slog.String("loser_id", outcome.LoserID),
			slog.Any("error", err),
		)
	}

	err := postgres.InTx(context, repository.db, maxRecordAttempts, onRetry, func(tx pgx.Tx) error {

		// ── 1. Lock ──
		locked, err := repository.lockRatings(context, tx, outcome.WinnerID, outcome.LoserID)
		if err != nil {
			return err
		}

		winner, loser := locked[outcome.WinnerID], locked[outcome.LoserID]

		// ── 2. Compute ──
		newWinner, newLoser := apply(winner.rating, loser.rating)

		// ── 3. Conditional writes ──
		if err := repository.writeRating(context, tx, outcome.WinnerID, newWinner, winner.version); err != nil {
			return err
		}
		if err := repository.writeRating(context, tx, outcome.LoserID, newLoser, loser.version); err != nil {
			return err
		}

		// ── 4. Append outcome ──
		if err := repository.insertOutcome(context, tx, outcome); err != nil {
			return err
		}

		result = Result{Outcome: outcome, WinnerRating: newWinner, LoserRating: newLoser}
		return nil
	})

	if err != nil {
		if errors.Is(err, postgres.ErrRetry) || dberr.IsRetryable(err) {
			return Result{}, apperr.Upstream(fmt.Errorf("apply_outcome: retries exhausted: %w", err))
		}
		return Result{}, dberr.Wrap(err, "apply_outcome")
	}

	return result, nil
}

// lockRatings selects both photos FOR UPDATE ordered by id.
func (repository *PostgresRepository) lockRatings(context context.Context, tx pgx.Tx, winnerID, loserID string) (map[string]lockedRating, error) {
	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1::uuid[])
		ORDER BY %s
		FOR UPDATE
	`,
		schema.CorePhoto.ID, schema.CorePhoto.Rating, schema.CorePhoto.Version, schema.CorePhoto.Status,
		schema.CorePhoto.Table, schema.CorePhoto.ID, schema.CorePhoto.ID,
	)

	rows, err := tx.Query(context, query, []string{winnerID, loserID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locked := make(map[string]lockedRating, 2)
	for rows.Next() {
		var (
			id     string
			row    lockedRating
			status string
		)
		if err := rows.Scan(&id, &row.rating, &row.version, &status); err != nil {
			return nil, err
		}
		row.status = photo.Status(status)
		locked[id] = row
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range []string{winnerID, loserID} {
		if row, ok := locked[id]; !ok || row.status != photo.StatusActive {
			return nil, apperr.NotFound("Photo")
		}
	}

	return locked, nil
}

// writeRating updates one rating if its version is unchanged.
func (repository *PostgresRepository) writeRating(context context.Context, tx pgx.Tx, id string, value int, version int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = %s + 1, %s = NOW()
		WHERE %s = $1 AND %s = $3
	`,
		schema.CorePhoto.Table,
		schema.CorePhoto.Rating, schema.CorePhoto.Version, schema.CorePhoto.Version, schema.CorePhoto.UpdatedAt,
		schema.CorePhoto.ID, schema.CorePhoto.Version,
	)

	tag, err := tx.Exec(context, query, id, value, version)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return postgres.ErrRetry
	}

	return nil
}

// insertOutcome appends the comparison record.
func (repository *PostgresRepository) insertOutcome(context context.Context, tx pgx.Tx, outcome Outcome) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.CoreBattle.Table,
		schema.CoreBattle.ID, schema.CoreBattle.WinnerID, schema.CoreBattle.LoserID,
		schema.CoreBattle.VoterID, schema.CoreBattle.CreatedAt,
	)

	_, err := tx.Exec(context, query, outcome.ID, outcome.WinnerID, outcome.LoserID, outcome.VoterID, outcome.CreatedAt)
	return err
}
