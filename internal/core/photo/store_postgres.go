// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/database/schema"
	"github.com/taibuivan/snapduel/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var errPhotoNotFound = apperr.NotFound("Photo")

// # Mutations

// Create persists a new photo row.
func (repository *PostgresRepository) Create(context context.Context, photo *Photo) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, schema.CorePhoto.Table, strings.Join(schema.CorePhoto.Columns(), ", "))

	_, err := repository.db.Exec(context, query,
		photo.ID, photo.OwnerID, photo.ImageURL, photo.Rating, photo.Version, string(photo.Tier),
		string(photo.Status), photo.Tags, photo.IsSensitive, photo.CreatedAt, photo.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_photo")
	}

	return nil
}

// UpdateStatus changes moderation status and bumps updatedat.
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status Status) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CorePhoto.Table, schema.CorePhoto.Status, schema.CorePhoto.UpdatedAt, schema.CorePhoto.ID)

	tag, err := repository.db.Exec(context, query, id, string(status))
	if err != nil {
		return dberr.Wrap(err, "update_photo_status")
	}

	if tag.RowsAffected() == 0 {
		return errPhotoNotFound
	}

	return nil
}

// # Lookups

// FindByID fetches one photo by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Photo, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CorePhoto.Select(), schema.CorePhoto.Table, schema.CorePhoto.ID)

	photo, err := scanPhoto(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errPhotoNotFound
		}
		return nil, dberr.Wrap(err, "get_photo_by_id")
	}

	return photo, nil
}

// FindByIDs fetches every existing photo among ids in one round-trip.
func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Photo, error) {
	if len(ids) == 0 {
		return []*Photo{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[])`,
		schema.CorePhoto.Select(), schema.CorePhoto.Table, schema.CorePhoto.ID)

	return repository.list(context, "list_photos_by_ids", query, ids)
}

/*
ListByStatus builds the candidate pool for battles and decks.

Description: Tier and exclusion filters are pushed into SQL. With Shuffle set
the sample is drawn with ORDER BY random(), otherwise rows come back in id
order so the result is stable.
*/
func (repository *PostgresRepository) ListByStatus(context context.Context, status Status, query PoolQuery) ([]*Photo, error) {
	var (
		conditions = []string{fmt.Sprintf("%s = $1", schema.CorePhoto.Status)}
		args       = []any{string(status)}
	)

	if len(query.Tiers) > 0 {
		tiers := make([]string, len(query.Tiers))
		for index, tier := range query.Tiers {
			tiers[index] = string(tier)
		}
		args = append(args, tiers)
		conditions = append(conditions, fmt.Sprintf("%s = ANY($%d::text[])", schema.CorePhoto.Tier, len(args)))
	}

	if len(query.ExcludeIDs) > 0 {
		args = append(args, query.ExcludeIDs)
		conditions = append(conditions, fmt.Sprintf("%s <> ALL($%d::uuid[])", schema.CorePhoto.ID, len(args)))
	}

	order := schema.CorePhoto.ID
	if query.Shuffle {
		order = "random()"
	}

	args = append(args, query.Limit)
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d`,
		schema.CorePhoto.Select(), schema.CorePhoto.Table,
		strings.Join(conditions, " AND "), order, len(args))

	return repository.list(context, "list_photos_by_status", sql, args...)
}

// ListByOwner returns one page of an owner's photos and the total count.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, includeHidden bool, limit, offset int) ([]*Photo, int, error) {
	where := fmt.Sprintf("%s = $1", schema.CorePhoto.OwnerID)
	if !includeHidden {
		where += fmt.Sprintf(" AND %s = '%s'", schema.CorePhoto.Status, StatusActive)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.CorePhoto.Table, where)
	if err := repository.db.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_photos_by_owner")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s DESC LIMIT $2 OFFSET $3`,
		schema.CorePhoto.Select(), schema.CorePhoto.Table, where,
		schema.CorePhoto.CreatedAt, schema.CorePhoto.ID)

	photos, err := repository.list(context, "list_photos_by_owner", query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

// TopRated returns the highest rated active photos, optionally requiring a tag.
func (repository *PostgresRepository) TopRated(context context.Context, tagKey string, limit int) ([]*Photo, error) {
	where := fmt.Sprintf("%s = '%s'", schema.CorePhoto.Status, StatusActive)
	args := []any{limit}

	if tagKey != "" {
		args = append(args, tagKey)
		where += fmt.Sprintf(" AND COALESCE(%s ->> $2, '') <> ''", schema.CorePhoto.Tags)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s ASC LIMIT $1`,
		schema.CorePhoto.Select(), schema.CorePhoto.Table, where,
		schema.CorePhoto.Rating, schema.CorePhoto.ID)

	return repository.list(context, "list_top_rated_photos", query, args...)
}

// # Scanning

func (repository *PostgresRepository) list(context context.Context, action, query string, args ...any) ([]*Photo, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	photos := make([]*Photo, 0)
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return photos, nil
}

// scanPhoto reads one row in [schema.CorePhotoTable.Select] column order.
func scanPhoto(row pgx.Row) (*Photo, error) {
	var (
		photo  Photo
		tier   string
		status string
	)

	err := row.Scan(
		&photo.ID, &photo.OwnerID, &photo.ImageURL, &photo.Rating, &photo.Version, &tier,
		&status, &photo.Tags, &photo.IsSensitive, &photo.CreatedAt, &photo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	photo.Tier = access.Tier(tier)
	photo.Status = Status(status)
	if photo.Tags == nil {
		photo.Tags = map[string]string{}
	}

	return &photo, nil
}
