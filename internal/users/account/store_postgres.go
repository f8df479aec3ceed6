// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/database/schema"
	"github.com/taibuivan/snapduel/internal/platform/dberr"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindProfile retrieves a profile from users.account with follow counters
computed from users.follow.
*/
func (repository *PostgresAccountRepository) FindProfile(context context.Context, id string) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT a.%s::text, a.%s, a.%s, a.%s, a.%s, a.%s,
			(SELECT COUNT(*) FROM %s f WHERE f.%s = a.%s),
			(SELECT COUNT(*) FROM %s f WHERE f.%s = a.%s)
		FROM %s a
		WHERE a.%s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.DisplayName,
		schema.UserAccount.AvatarURL, schema.UserAccount.IsBanned, schema.UserAccount.CreatedAt,
		schema.UserFollow.Table, schema.UserFollow.FolloweeID, schema.UserAccount.ID,
		schema.UserFollow.Table, schema.UserFollow.FollowerID, schema.UserAccount.ID,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
	)

	var profile Profile
	err := repository.pool.QueryRow(context, query, id).Scan(
		&profile.ID, &profile.Username, &profile.DisplayName, &profile.AvatarURL, &profile.IsBanned, &profile.CreatedAt,
		&profile.FollowerCount, &profile.FollowingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_profile")
	}

	return &profile, nil
}

// UpdateProfile overwrites display name and avatar URL.
func (repository *PostgresAccountRepository) UpdateProfile(context context.Context, id, displayName, avatarURL string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, displayName, avatarURL)
	if err != nil {
		return dberr.Wrap(err, "update_profile")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// SetBanned updates the ban flag.
func (repository *PostgresAccountRepository) SetBanned(context context.Context, id string, banned bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.IsBanned, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, banned)
	if err != nil {
		return dberr.Wrap(err, "set_banned")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// IsBanned reads the ban flag; a missing row reads as not banned.
func (repository *PostgresAccountRepository) IsBanned(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserAccount.IsBanned, schema.UserAccount.Table, schema.UserAccount.ID)

	var banned bool
	err := repository.pool.QueryRow(context, query, id).Scan(&banned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, dberr.Wrap(err, "is_banned")
	}

	return banned, nil
}
