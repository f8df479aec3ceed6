// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photo

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/rating"
	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/validate"
	"github.com/taibuivan/snapduel/pkg/normalize"
	"github.com/taibuivan/snapduel/pkg/pagination"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

// Ranking size bounds.
const (
	DefaultRankingSize = 10
	MaxRankingSize     = 50
)

// MaxResolveBatch bounds the number of ids in one access resolution request.
const MaxResolveBatch = 200

// AccessResolver decides viewability for a batch of photos.
type AccessResolver interface {
	Resolve(context context.Context, viewerID *string, items []access.Item) map[string]bool
}

// Service implements the photo catalog use cases.
type Service struct {
	repo     Repository
	cache    RankingCache
	resolver AccessResolver
	cacheTTL time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewService constructs a photo [Service]. cache may be nil to disable caching.
func NewService(repo Repository, cache RankingCache, resolver AccessResolver, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		resolver: resolver,
		cacheTTL: cacheTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// # Upload

/*
Upload registers a new photo for ownerID at the baseline rating.

Description: Tags are normalised before storage. Tier defaults to free.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: UploadInput

Returns:
  - *Photo: The stored photo
  - error: Validation or database failures
*/
func (service *Service) Upload(context context.Context, ownerID string, input UploadInput) (*Photo, error) {

	// ── 1. Validate ──
	if input.Tier == "" {
		input.Tier = access.TierFree
	}

	validator := &validate.Validator{}
	validator.
		Required("image_url", input.ImageURL).
		MaxLen("image_url", input.ImageURL, 2048).
		HTTPURL("image_url", input.ImageURL).
		Custom("tier", !input.Tier.Valid(), "Must be one of: free, follower, paid").
		Custom("tags", len(input.Tags) > MaxTags, fmt.Sprintf("At most %d tags", MaxTags))

	tags := normalize.Tags(input.Tags)
	for key, value := range tags {
		validator.MaxLen("tags."+key, value, 100)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Build ──
	now := service.now().UTC()
	photo := &Photo{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ImageURL:    input.ImageURL,
		Rating:      rating.Baseline,
		Tier:        input.Tier,
		Status:      StatusActive,
		Tags:        tags,
		IsSensitive: input.IsSensitive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// ── 3. Persist ──
	if err := service.repo.Create(context, photo); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "photo_uploaded",
		slog.String("photo_id", photo.ID),
		slog.String("owner_id", ownerID),
		slog.String("tier", string(photo.Tier)),
	)

	return photo, nil
}

// # Viewer-Aware Reads

/*
Get returns one photo projected for viewerID.

Description: Hidden photos are reported as missing to everyone but their owner.
*/
func (service *Service) Get(context context.Context, viewerID *string, id string) (*Card, error) {
	photo, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID != nil && *viewerID == photo.OwnerID
	if photo.Status != StatusActive && !isOwner {
		return nil, apperr.NotFound("Photo")
	}

	decisions := service.resolver.Resolve(context, viewerID, []access.Item{photo.AccessItem()})
	card := NewCard(photo, decisions[photo.ID])

	return &card, nil
}

/*
ResolveAccess answers viewability for a list of photo ids.

Description: Unknown ids resolve to false. Hidden photos resolve to false
except for their owner.

Returns:
  - map[string]bool: One entry per distinct requested id
  - error: Validation or database failures
*/
func (service *Service) ResolveAccess(context context.Context, viewerID *string, ids []string) (map[string]bool, error) {
	if len(ids) > MaxResolveBatch {
		return nil, validate.RequiredError("photo_ids", fmt.Sprintf("At most %d ids per request", MaxResolveBatch))
	}

	validator := &validate.Validator{}
	for _, id := range ids {
		validator.UUID("photo_ids", id)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	photos, err := service.repo.FindByIDs(context, ids)
	if err != nil {
		return nil, err
	}

	items := make([]access.Item, 0, len(photos))
	for _, photo := range photos {
		isOwner := viewerID != nil && *viewerID == photo.OwnerID
		if photo.Status == StatusActive || isOwner {
			items = append(items, photo.AccessItem())
		}
	}

	decisions := service.resolver.Resolve(context, viewerID, items)

	result := make(map[string]bool, len(ids))
	for _, id := range ids {
		result[id] = decisions[id]
	}

	return result, nil
}

// ListByOwner returns one page of an owner's photos as viewerID sees them.
func (service *Service) ListByOwner(context context.Context, viewerID *string, ownerID string, params pagination.Params) ([]Card, int, error) {
	isOwner := viewerID != nil && *viewerID == ownerID

	photos, total, err := service.repo.ListByOwner(context, ownerID, isOwner, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	decisions := service.resolver.Resolve(context, viewerID, AccessItems(photos))
	return Cards(photos, decisions), total, nil
}

// # Ranking

/*
Ranking returns the top rated active photos, optionally filtered by tag key.

Description: The ordered list is cached; access is resolved per request so a
cached ranking never carries one viewer's entitlements to another.

Parameters:
  - context: context.Context
  - viewerID: *string
  - tag: string (empty, part, title or character)
  - limit: int (clamped to [1, MaxRankingSize])

Returns:
  - []Card: Highest rating first
  - error: Validation or database failures
*/
func (service *Service) Ranking(context context.Context, viewerID *string, tag string, limit int) ([]Card, error) {
	tag = normalize.Key(tag)
	if tag != "" && !slices.Contains(RankingTags(), tag) {
		return nil, validate.RequiredError("tag", "Must be one of: part, title, character")
	}

	if limit <= 0 {
		limit = DefaultRankingSize
	}
	limit = min(limit, MaxRankingSize)

	photos, err := service.topRated(context, tag, limit)
	if err != nil {
		return nil, err
	}

	decisions := service.resolver.Resolve(context, viewerID, AccessItems(photos))
	return Cards(photos, decisions), nil
}

// topRated reads through the ranking cache. Cache failures fall back to the
// database.
func (service *Service) topRated(context context.Context, tag string, limit int) ([]*Photo, error) {
	key := fmt.Sprintf("%s:%d", tag, limit)
	if tag == "" {
		key = fmt.Sprintf("all:%d", limit)
	}

	if service.cache != nil {
		photos, ok, err := service.cache.Get(context, key)
		switch {
		case err != nil:
			metrics.RankingCacheTotal.WithLabelValues("error").Inc()
			service.logger.WarnContext(context, "ranking_cache_get_failed", slog.Any("error", err))
		case ok:
			metrics.RankingCacheTotal.WithLabelValues("hit").Inc()
			return photos, nil
		default:
			metrics.RankingCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	photos, err := service.repo.TopRated(context, tag, limit)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, key, photos, service.cacheTTL); err != nil {
			service.logger.WarnContext(context, "ranking_cache_set_failed", slog.Any("error", err))
		}
	}

	return photos, nil
}

// # Moderation

// SetStatus moves a photo between active and hidden and drops cached rankings.
func (service *Service) SetStatus(context context.Context, id string, status Status) error {
	if !status.Valid() {
		return validate.RequiredError("status", "Must be one of: active, hidden")
	}

	if err := service.repo.UpdateStatus(context, id, status); err != nil {
		return err
	}

	if service.cache != nil {
		if err := service.cache.Invalidate(context); err != nil {
			service.logger.WarnContext(context, "ranking_cache_invalidate_failed", slog.Any("error", err))
		}
	}

	service.logger.InfoContext(context, "photo_status_changed",
		slog.String("photo_id", id),
		slog.String("status", string(status)),
	)

	return nil
}
