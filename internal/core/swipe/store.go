// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package swipe

import (
	"context"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/photo"
)

// Repository persists swipe judgments.
type Repository interface {

	/*
		InsertJudgment appends one judgment.

		Returns:
		  - error: NotFound (unknown photo) or database failures
	*/
	InsertJudgment(context context.Context, judgment Judgment) error

	/*
		JudgedPhotoIDs returns every photo the viewer has liked or passed.

		Parameters:
		  - context: context.Context
		  - viewerID: string

		Returns:
		  - access.IDSet: Judged photo IDs
		  - error: Database failures
	*/
	JudgedPhotoIDs(context context.Context, viewerID string) (access.IDSet, error)
}

// CandidateSource lists photos eligible for a deck.
type CandidateSource interface {
	ListByStatus(context context.Context, status photo.Status, query photo.PoolQuery) ([]*photo.Photo, error)
}
