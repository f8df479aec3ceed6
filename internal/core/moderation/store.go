// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"context"
	"time"

	"github.com/taibuivan/snapduel/internal/core/photo"
)

// Repository persists reports.
type Repository interface {

	/*
		Insert stores a new pending report.

		Returns:
		  - error: Conflict (pending report already filed), NotFound (unknown photo)
		    or database failures
	*/
	Insert(context context.Context, report *Report) error

	// FindByID returns one report or NotFound.
	FindByID(context context.Context, id string) (*Report, error)

	/*
		List returns one page of reports with status, oldest first.

		Returns:
		  - []*Report: The page
		  - int: Total reports with status
		  - error: Database failures
	*/
	List(context context.Context, status Status, limit, offset int) ([]*Report, int, error)

	/*
		Close moves a pending report to outcome.

		Returns:
		  - *Report: The closed report
		  - error: Conflict when the report is no longer pending, or database failures
	*/
	Close(context context.Context, id string, outcome Status, moderatorID string, at time.Time) (*Report, error)
}

// PhotoModerator changes photo visibility. [photo.Service] satisfies it.
type PhotoModerator interface {
	SetStatus(context context.Context, id string, status photo.Status) error
}
