// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/database/schema"
	"github.com/taibuivan/snapduel/internal/platform/dberr"
	"github.com/taibuivan/snapduel/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var errUserNotFound = apperr.NotFound("User")

// selectUser is the column list shared by every account lookup.
var selectUser = schema.UserAccount.Select()

/*
Create persists a new user record into the users.account table.

Description: A unique violation on email or username surfaces as Conflict.
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.PasswordHash, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.UserAccount.Role, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName,
		user.AvatarURL, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		wrapped := dberr.Wrap(err, "create_user")
		if apperr.HasCode(wrapped, apperr.CodeConflict) {
			return apperr.Conflict("Email or username is already registered")
		}
		return wrapped
	}

	return nil
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectUser, schema.UserAccount.Table, schema.UserAccount.ID)

	return repository.findOne(context, "get_user_by_id", query, id)
}

// FindByLogin retrieves a user by email or username, case-insensitively.
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1) OR LOWER(%s) = LOWER($1) LIMIT 1`,
		selectUser, schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.Username)

	return repository.findOne(context, "get_user_by_login", query, login)
}

// UpdatePassword overwrites the stored bcrypt hash.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.PasswordHash, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound
	}

	return nil
}

func (repository *PostgresUserRepository) findOne(context context.Context, action, query string, arg any) (*User, error) {
	var (
		user User
		role string
	)

	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.AvatarURL, &role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errUserNotFound
		}
		return nil, dberr.Wrap(err, action)
	}

	user.Role = sec.UserRole(role)
	return &user, nil
}
