// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"context"

	"github.com/taibuivan/snapduel/internal/core/photo"
)

// RatingFunc maps the current winner and loser ratings to their new values.
type RatingFunc func(winner, loser int) (newWinner, newLoser int)

// Repository persists comparison outcomes.
type Repository interface {

	/*
		ApplyOutcome updates both ratings and appends the outcome atomically.

		Description: Both photos are locked, apply is called with their current
		ratings, and the results are written with a version check. Either every
		write commits or none does.

		Parameters:
		  - context: context.Context
		  - outcome: Outcome (ID and CreatedAt set)
		  - apply: RatingFunc

		Returns:
		  - Result: Committed outcome and new ratings
		  - error: NotFound, retryable Upstream, or database failures
	*/
	ApplyOutcome(context context.Context, outcome Outcome, apply RatingFunc) (Result, error)
}

// CandidateSource lists photos eligible for selection.
type CandidateSource interface {
	ListByStatus(context context.Context, status photo.Status, query photo.PoolQuery) ([]*photo.Photo, error)
}
