// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/database/schema"
	"github.com/taibuivan/snapduel/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on users.follow.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert adds the edge. A missing account on either side surfaces as NotFound.
func (repository *PostgresRepository) Insert(context context.Context, edge Edge) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		schema.UserFollow.Table,
		schema.UserFollow.FollowerID, schema.UserFollow.FolloweeID, schema.UserFollow.CreatedAt,
	)

	tag, err := repository.pool.Exec(context, query, edge.FollowerID, edge.FolloweeID, edge.CreatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "insert_follow")
		if apperr.HasCode(wrapped, apperr.CodeNotFound) {
			return false, apperr.NotFound("User")
		}
		return false, wrapped
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes the edge.
func (repository *PostgresRepository) Delete(context context.Context, followerID, followeeID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserFollow.Table, schema.UserFollow.FollowerID, schema.UserFollow.FolloweeID)

	tag, err := repository.pool.Exec(context, query, followerID, followeeID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_follow")
	}

	return tag.RowsAffected() == 1, nil
}
