// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package swipe

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/photo"
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

// InsertJudgment appends a judgment row. Only active photos can be judged; a
// hidden, deleted or unknown photo is NotFound.
func (repository *PostgresRepository) InsertJudgment(context context.Context, judgment Judgment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		SELECT $1::uuid, $2::uuid, p.%s, $4::varchar, $5::timestamptz
		FROM %s p
		WHERE p.%s = $3 AND p.%s = $6
	`,
		schema.CoreSwipe.Table,
		schema.CoreSwipe.ID, schema.CoreSwipe.ViewerID, schema.CoreSwipe.PhotoID,
		schema.CoreSwipe.Verdict, schema.CoreSwipe.CreatedAt,
		schema.CorePhoto.ID,
		schema.CorePhoto.Table,
		schema.CorePhoto.ID, schema.CorePhoto.Status,
	)

	tag, err := repository.db.Exec(context, query,
		judgment.ID, judgment.ViewerID, judgment.PhotoID, string(judgment.Verdict), judgment.CreatedAt,
		string(photo.StatusActive))
	if err != nil {
		return dberr.Wrap(err, "insert_swipe_judgment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Photo")
	}

	return nil
}

// JudgedPhotoIDs reads the viewer's distinct judged photos.
func (repository *PostgresRepository) JudgedPhotoIDs(context context.Context, viewerID string) (access.IDSet, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s::text FROM %s WHERE %s = $1`,
		schema.CoreSwipe.PhotoID, schema.CoreSwipe.Table, schema.CoreSwipe.ViewerID)

	rows, err := repository.db.Query(context, query, viewerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_judged_photo_ids")
	}
	defer rows.Close()

	judged := make(access.IDSet)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_judged_photo_id")
		}
		judged.Add(id)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_judged_photo_ids")
	}

	return judged, nil
}
