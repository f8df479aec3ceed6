// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/core/rating"
	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/validate"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

// Service implements battle selection and recording.
type Service struct {
	candidates CandidateSource
	repo       Repository
	resolver   photo.AccessResolver
	random     Random
	poolLimit  int
	now        func() time.Time
	logger     *slog.Logger
}

// Option customises a [Service].
type Option func(*Service)

// WithRandom replaces the randomness source.
func WithRandom(random Random) Option {
	return func(service *Service) { service.random = random }
}

// WithPoolLimit overrides [DefaultPoolLimit].
func WithPoolLimit(limit int) Option {
	return func(service *Service) {
		if limit >= 2 {
			service.poolLimit = limit
		}
	}
}

// WithClock replaces the clock used to timestamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a battle [Service].
func NewService(candidates CandidateSource, repo Repository, resolver photo.AccessResolver, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		candidates: candidates,
		repo:       repo,
		resolver:   resolver,
		random:     globalRandom{},
		poolLimit:  DefaultPoolLimit,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Selection

/*
NextPair selects the next battle for viewerID.

Description: Anonymous viewers draw from free photos only. Authenticated
viewers draw from every active photo, narrowed to what the access resolver
allows, so a pair never contains a photo the viewer cannot see.

Returns:
  - Pair: Two distinct viewable photos
  - error: ErrEmpty when fewer than two qualify, or database failures
*/
func (service *Service) NextPair(context context.Context, viewerID *string) (Pair, error) {

	// ── 1. Candidate pool ──
	query := photo.PoolQuery{Limit: service.poolLimit, Shuffle: true}
	if viewerID == nil {
		query.Tiers = []access.Tier{access.TierFree}
	}

	pool, err := service.candidates.ListByStatus(context, photo.StatusActive, query)
	if err != nil {
		return Pair{}, err
	}

	// ── 2. Access filter ──
	if viewerID != nil {
		decisions := service.resolver.Resolve(context, viewerID, photo.AccessItems(pool))
		viewable := pool[:0:0]
		for _, candidate := range pool {
			if decisions[candidate.ID] {
				viewable = append(viewable, candidate)
			}
		}
		pool = viewable
	}

	// ── 3. Pair ──
	pair, err := SelectPair(pool, service.random)
	if errors.Is(err, ErrEmpty) {
		metrics.SelectionEmptyTotal.WithLabelValues("pair").Inc()
	}

	return pair, err
}

// # Recording

/*
RecordComparison applies "winnerID beat loserID" to both ratings.

Parameters:
  - context: context.Context
  - winnerID, loserID: string
  - voterID: *string (nil for anonymous votes)

Returns:
  - Result: Committed outcome and new ratings
  - error: Validation, Conflict (same photo), NotFound, or retryable Upstream
*/
func (service *Service) RecordComparison(context context.Context, winnerID, loserID string, voterID *string) (Result, error) {

	// ── 1. Validate ──
	if winnerID == loserID {
		metrics.ComparisonsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return Result{}, apperr.Conflict("A photo cannot battle itself")
	}

	validator := &validate.Validator{}
	validator.UUID("winner_id", winnerID).UUID("loser_id", loserID)
	if err := validator.Err(); err != nil {
		metrics.ComparisonsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return Result{}, err
	}

	// ── 2. Apply ──
	outcome := Outcome{
		ID:        uuid.New(),
		WinnerID:  winnerID,
		LoserID:   loserID,
		VoterID:   voterID,
		CreatedAt: service.now().UTC(),
	}

	result, err := service.repo.ApplyOutcome(context, outcome, rating.Apply)
	if err != nil {
		label := metrics.ResultFailed
		if apperr.HasCode(err, apperr.CodeNotFound) {
			label = metrics.ResultRejected
		}
		metrics.ComparisonsTotal.WithLabelValues(label).Inc()
		return Result{}, err
	}

	metrics.ComparisonsTotal.WithLabelValues(metrics.ResultRecorded).Inc()
	service.logger.InfoContext(context, "comparison_recorded",
		slog.String("outcome_id", outcome.ID),
		slog.String("winner_id", winnerID),
		slog.String("loser_id", loserID),
		slog.Int("winner_rating", result.WinnerRating),
		slog.Int("loser_rating", result.LoserRating),
	)

	return result, nil
}
