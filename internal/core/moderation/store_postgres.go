// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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

// selectColumns lists report columns in scan order.
func selectColumns() string {
	table := schema.CoreReport
	return strings.Join([]string{
		table.ID + "::text", table.ReporterID + "::text", table.PhotoID + "::text",
		table.Reason, table.Status, table.ResolvedBy + "::text", table.CreatedAt, table.ResolvedAt,
	}, ", ")
}

// Insert stores a pending report. The partial unique index turns a second
// pending report into Conflict and the photo foreign key turns an unknown
// photo into NotFound.
func (repository *PostgresRepository) Insert(context context.Context, report *Report) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.CoreReport.Table,
		schema.CoreReport.ID, schema.CoreReport.ReporterID, schema.CoreReport.PhotoID,
		schema.CoreReport.Reason, schema.CoreReport.Status, schema.CoreReport.CreatedAt,
	)

	_, err := repository.db.Exec(context, query,
		report.ID, report.ReporterID, report.PhotoID, report.Reason, string(report.Status), report.CreatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "insert_report")
		switch {
		case apperr.HasCode(wrapped, apperr.CodeConflict):
			return apperr.Conflict("You already reported this photo")
		case apperr.HasCode(wrapped, apperr.CodeNotFound):
			return apperr.NotFound("Photo")
		}
		return wrapped
	}

	return nil
}

// FindByID reads one report.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.CoreReport.Table, schema.CoreReport.ID)

	report, err := scanReport(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Report")
		}
		return nil, dberr.Wrap(err, "find_report")
	}

	return report, nil
}

// List pages through reports with status, oldest first so the queue drains
// in arrival order.
func (repository *PostgresRepository) List(context context.Context, status Status, limit, offset int) ([]*Report, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.CoreReport.Table, schema.CoreReport.Status)
	if err := repository.db.QueryRow(context, countQuery, string(status)).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reports")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC LIMIT $2 OFFSET $3`,
		selectColumns(), schema.CoreReport.Table, schema.CoreReport.Status,
		schema.CoreReport.CreatedAt, schema.CoreReport.ID)

	rows, err := repository.db.Query(context, query, string(status), limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reports")
	}
	defer rows.Close()

	reports := make([]*Report, 0, limit)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_report")
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_reports")
	}

	return reports, total, nil
}

// Close updates a report only while it is still pending, so two moderators
// racing on one report cannot both close it.
func (repository *PostgresRepository) Close(context context.Context, id string, outcome Status, moderatorID string, at time.Time) (*Report, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s = $5
		RETURNING %s
	`,
		schema.CoreReport.Table,
		schema.CoreReport.Status, schema.CoreReport.ResolvedBy, schema.CoreReport.ResolvedAt,
		schema.CoreReport.ID, schema.CoreReport.Status,
		selectColumns(),
	)

	report, err := scanReport(repository.db.QueryRow(context, query,
		id, string(outcome), moderatorID, at, string(StatusPending)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Conflict("Report is already closed")
		}
		return nil, dberr.Wrap(err, "close_report")
	}

	return report, nil
}

// # Scanning

func scanReport(row pgx.Row) (*Report, error) {
	var (
		report Report
		status string
	)
	err := row.Scan(&report.ID, &report.ReporterID, &report.PhotoID, &report.Reason, &status,
		&report.ResolvedBy, &report.CreatedAt, &report.ResolvedAt)
	if err != nil {
		return nil, err
	}
	report.Status = Status(status)
	return &report, nil
}
