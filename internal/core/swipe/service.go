// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package swipe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/validate"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

// Service implements deck selection and judgment recording.
type Service struct {
	candidates     CandidateSource
	repo           Repository
	resolver       photo.AccessResolver
	shuffler       Shuffler
	poolMultiplier int
	now            func() time.Time
	logger         *slog.Logger
}

// Option customises a [Service].
type Option func(*Service)

// WithShuffler replaces the randomness source.
func WithShuffler(shuffler Shuffler) Option {
	return func(service *Service) { service.shuffler = shuffler }
}

// WithPoolMultiplier overrides [PoolMultiplier].
func WithPoolMultiplier(multiplier int) Option {
	return func(service *Service) {
		if multiplier >= 1 {
			service.poolMultiplier = multiplier
		}
	}
}

// WithClock replaces the clock used to timestamp judgments.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a swipe [Service].
func NewService(candidates CandidateSource, repo Repository, resolver photo.AccessResolver, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		candidates:     candidates,
		repo:           repo,
		resolver:       resolver,
		shuffler:       globalShuffler{},
		poolMultiplier: PoolMultiplier,
		now:            time.Now,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Deck Selection

/*
NextDeck selects up to size photos for viewerID.

Description:
  - Caller-supplied excludeIDs (the current session) are always skipped.
  - Authenticated viewers also skip everything they judged before, and every
    card carries the resolver's decision; gated cards come back redacted.
  - Anonymous viewers only ever receive free photos.

Parameters:
  - context: context.Context
  - viewerID: *string
  - size: int (0 means DefaultDeckSize; clamped to MaxDeckSize)
  - excludeIDs: []string (at most MaxExcludeIDs)

Returns:
  - Deck: Possibly empty
  - error: Validation or database failures
*/
func (service *Service) NextDeck(context context.Context, viewerID *string, size int, excludeIDs []string) (Deck, error) {

	// ── 1. Normalise input ──
	if size <= 0 {
		size = DefaultDeckSize
	}
	size = min(size, MaxDeckSize)

	if len(excludeIDs) > MaxExcludeIDs {
		return Deck{}, validate.RequiredError("exclude", fmt.Sprintf("At most %d ids", MaxExcludeIDs))
	}

	exclude := access.NewIDSet(excludeIDs...)

	// ── 2. Already judged ──
	query := photo.PoolQuery{Limit: size * service.poolMultiplier, Shuffle: true}
	if viewerID == nil {
		query.Tiers = []access.Tier{access.TierFree}
	} else {
		judged, err := service.repo.JudgedPhotoIDs(context, *viewerID)
		if err != nil {
			return Deck{}, err
		}
		for id := range judged {
			exclude.Add(id)
		}
	}

	// Only well-formed ids can be pushed into the uuid[] filter; anything else
	// cannot match a row anyway.
	for id := range exclude {
		if uuid.Valid(id) {
			query.ExcludeIDs = append(query.ExcludeIDs, id)
		}
	}

	// ── 3. Pool and selection ──
	pool, err := service.candidates.ListByStatus(context, photo.StatusActive, query)
	if err != nil {
		return Deck{}, err
	}

	selected := SelectDeck(pool, exclude, size, service.shuffler)

	// ── 4. Access ──
	var decisions map[string]bool
	if viewerID == nil {
		decisions = make(map[string]bool, len(selected))
		for _, candidate := range selected {
			decisions[candidate.ID] = candidate.Tier == access.TierFree
		}
	} else {
		decisions = service.resolver.Resolve(context, viewerID, photo.AccessItems(selected))
	}

	deck := newDeck(photo.Cards(selected, decisions))
	if deck.Empty {
		metrics.SelectionEmptyTotal.WithLabelValues("deck").Inc()
	}

	return deck, nil
}

// # Judgments

/*
RecordJudgment appends a like or pass by viewerID. Ratings are unchanged.

Returns:
  - Judgment: The stored judgment
  - error: Validation, NotFound (unknown or inactive photo), or database failures
*/
func (service *Service) RecordJudgment(context context.Context, viewerID, photoID string, verdict Verdict) (Judgment, error) {
	validator := &validate.Validator{}
	validator.
		UUID("photo_id", photoID).
		Custom("verdict", !verdict.Valid(), "Must be one of: like, pass")
	if err := validator.Err(); err != nil {
		return Judgment{}, err
	}

	judgment := Judgment{
		ID:        uuid.New(),
		ViewerID:  viewerID,
		PhotoID:   photoID,
		Verdict:   verdict,
		CreatedAt: service.now().UTC(),
	}

	if err := service.repo.InsertJudgment(context, judgment); err != nil {
		return Judgment{}, err
	}

	metrics.SwipeJudgmentsTotal.WithLabelValues(string(verdict)).Inc()
	service.logger.InfoContext(context, "swipe_recorded",
		slog.String("judgment_id", judgment.ID),
		slog.String("photo_id", photoID),
		slog.String("verdict", string(verdict)),
	)

	return judgment, nil
}
