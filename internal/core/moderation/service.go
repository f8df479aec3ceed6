// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/validate"
	"github.com/taibuivan/snapduel/pkg/pagination"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

// Service implements the report queue.
type Service struct {
	repo   Repository
	photos PhotoModerator
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a moderation [Service].
func NewService(repo Repository, photos PhotoModerator, logger *slog.Logger) *Service {
	return &Service{repo: repo, photos: photos, now: time.Now, logger: logger}
}

// # Reports

/*
FileReport records reporterID's complaint about a photo.

Parameters:
  - context: context.Context
  - reporterID: string
  - input: FileReportInput

Returns:
  - *Report: The pending report
  - error: Validation, Conflict (already pending), NotFound (unknown photo) or
    database failures
*/
func (service *Service) FileReport(context context.Context, reporterID string, input FileReportInput) (*Report, error) {
	reason := strings.TrimSpace(input.Reason)

	validator := &validate.Validator{}
	validator.
		UUID("photo_id", input.PhotoID).
		Required("reason", reason).
		MaxLen("reason", reason, MaxReasonLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:         uuid.New(),
		ReporterID: reporterID,
		PhotoID:    strings.ToLower(input.PhotoID),
		Reason:     reason,
		Status:     StatusPending,
		CreatedAt:  service.now().UTC(),
	}

	if err := service.repo.Insert(context, report); err != nil {
		return nil, err
	}

	metrics.ModerationActionsTotal.WithLabelValues(metrics.ModerationReport).Inc()
	service.logger.InfoContext(context, "photo_reported",
		slog.String("report_id", report.ID),
		slog.String("photo_id", report.PhotoID),
	)

	return report, nil
}

/*
ListReports returns one page of the queue. An empty status means pending.

Returns:
  - []*Report: The page, oldest first
  - int: Total reports with status
  - error: Validation or database failures
*/
func (service *Service) ListReports(context context.Context, status Status, params pagination.Params) ([]*Report, int, error) {
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return nil, 0, validate.RequiredError("status", "Must be one of: pending, resolved, dismissed")
	}

	return service.repo.List(context, status, params.Limit, params.Offset())
}

/*
ResolveReport closes a pending report with outcome on behalf of moderatorID.

Description:
  - resolved hides the reported photo before the report closes, so a failed
    hide leaves the report pending for another attempt.
  - dismissed leaves the photo untouched.

Returns:
  - *Report: The closed report
  - error: Validation, NotFound, Conflict (already closed) or database failures
*/
func (service *Service) ResolveReport(context context.Context, moderatorID, reportID string, outcome Status) (*Report, error) {

	// ── 1. Validate ──
	validator := &validate.Validator{}
	validator.
		UUID("id", reportID).
		Custom("outcome", !outcome.Closes(), "Must be one of: resolved, dismissed")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	report, err := service.repo.FindByID(context, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != StatusPending {
		return nil, apperr.Conflict(fmt.Sprintf("Report is already %s", report.Status))
	}

	// ── 2. Act on the photo ──
	if outcome == StatusResolved {
		if err := service.photos.SetStatus(context, report.PhotoID, photo.StatusHidden); err != nil {
			return nil, err
		}
	}

	// ── 3. Close ──
	closed, err := service.repo.Close(context, reportID, outcome, moderatorID, service.now().UTC())
	if err != nil {
		return nil, err
	}

	action := metrics.ModerationDismiss
	if outcome == StatusResolved {
		action = metrics.ModerationResolve
	}
	metrics.ModerationActionsTotal.WithLabelValues(action).Inc()
	service.logger.InfoContext(context, "report_closed",
		slog.String("report_id", reportID),
		slog.String("photo_id", report.PhotoID),
		slog.String("outcome", string(outcome)),
		slog.String("moderator_id", moderatorID),
	)

	return closed, nil
}
