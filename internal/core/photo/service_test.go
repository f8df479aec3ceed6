// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photo_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/pkg/pagination"
)

// # Fakes

type memoryRepo struct {
	photos   map[string]*photo.Photo
	topCalls int
}

func newMemoryRepo(photos ...*photo.Photo) *memoryRepo {
	repo := &memoryRepo{photos: map[string]*photo.Photo{}}
	for _, p := range photos {
		repo.photos[p.ID] = p
	}
	return repo
}

func (repo *memoryRepo) Create(_ context.Context, p *photo.Photo) error {
	repo.photos[p.ID] = p
	return nil
}

func (repo *memoryRepo) FindByID(_ context.Context, id string) (*photo.Photo, error) {
	if p, ok := repo.photos[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Photo")
}

func (repo *memoryRepo) FindByIDs(_ context.Context, ids []string) ([]*photo.Photo, error) {
	var out []*photo.Photo
	for _, id := range ids {
		if p, ok := repo.photos[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (repo *memoryRepo) ListByStatus(context.Context, photo.Status, photo.PoolQuery) ([]*photo.Photo, error) {
	return nil, errors.New("not used")
}

func (repo *memoryRepo) ListByOwner(_ context.Context, ownerID string, includeHidden bool, limit, offset int) ([]*photo.Photo, int, error) {
	var out []*photo.Photo
	for _, p := range repo.sorted() {
		if p.OwnerID == ownerID && (includeHidden || p.Status == photo.StatusActive) {
			out = append(out, p)
		}
	}
	total := len(out)
	if offset >= total {
		return []*photo.Photo{}, total, nil
	}
	return out[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepo) TopRated(_ context.Context, tagKey string, limit int) ([]*photo.Photo, error) {
	repo.topCalls++
	var out []*photo.Photo
	for _, p := range repo.sorted() {
		if p.Status != photo.StatusActive {
			continue
		}
		if tagKey != "" && p.Tags[tagKey] == "" {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out[:min(limit, len(out))], nil
}

func (repo *memoryRepo) UpdateStatus(_ context.Context, id string, status photo.Status) error {
	p, ok := repo.photos[id]
	if !ok {
		return apperr.NotFound("Photo")
	}
	p.Status = status
	return nil
}

func (repo *memoryRepo) sorted() []*photo.Photo {
	out := make([]*photo.Photo, 0, len(repo.photos))
	for _, p := range repo.photos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memoryCache struct {
	entries     map[string][]*photo.Photo
	invalidated int
}

func (cache *memoryCache) Get(_ context.Context, key string) ([]*photo.Photo, bool, error) {
	photos, ok := cache.entries[key]
	return photos, ok, nil
}

func (cache *memoryCache) Set(_ context.Context, key string, photos []*photo.Photo, _ time.Duration) error {
	cache.entries[key] = photos
	return nil
}

func (cache *memoryCache) Invalidate(context.Context) error {
	cache.entries = map[string][]*photo.Photo{}
	cache.invalidated++
	return nil
}

// tierResolver allows free photos to everyone and everything to "vip".
type tierResolver struct{}

func (tierResolver) Resolve(_ context.Context, viewerID *string, items []access.Item) map[string]bool {
	out := map[string]bool{}
	for _, item := range items {
		out[item.ID] = item.Tier == access.TierFree || (viewerID != nil && *viewerID == "vip")
	}
	return out
}

func newService(repo photo.Repository, cache photo.RankingCache) *photo.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return photo.NewService(repo, cache, tierResolver{}, time.Minute, logger)
}

func ptr(s string) *string { return &s }

func fixture(id, owner string, r int, tier access.Tier, tags map[string]string) *photo.Photo {
	return &photo.Photo{
		ID: id, OwnerID: owner, ImageURL: "https://cdn/" + id, Rating: r,
		Tier: tier, Status: photo.StatusActive, Tags: tags,
	}
}

// # Tests

/*
TestUpload_StartsAtBaseline stores a normalised, active photo rated 1500.
*/
func TestUpload_StartsAtBaseline(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo, nil)

	created, err := service.Upload(context.Background(), "owner", photo.UploadInput{
		ImageURL: "https://cdn.snapduel.app/a.jpg",
		Tags:     map[string]string{" Character ": "  Rei   Ayanami "},
	})

	require.NoError(t, err)
	assert.Equal(t, 1500, created.Rating)
	assert.Equal(t, photo.StatusActive, created.Status)
	assert.Equal(t, access.TierFree, created.Tier)
	assert.Equal(t, map[string]string{"character": "Rei Ayanami"}, created.Tags)
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, repo.photos, created.ID)
}

/*
TestUpload_Validation rejects bad URLs and unknown tiers.
*/
func TestUpload_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input photo.UploadInput
	}{
		{"missing_url", photo.UploadInput{}},
		{"relative_url", photo.UploadInput{ImageURL: "/a.jpg"}},
		{"bad_tier", photo.UploadInput{ImageURL: "https://cdn/a.jpg", Tier: "vip"}},
		{"tier_wrong_case", photo.UploadInput{ImageURL: "https://cdn/a.jpg", Tier: "Paid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(newMemoryRepo(), nil).Upload(context.Background(), "owner", tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestGet_RedactsImageWhenNotViewable keeps metadata but drops the URL.
*/
func TestGet_RedactsImageWhenNotViewable(t *testing.T) {
	paid := fixture("p1", "owner", 1500, access.TierPaid, nil)
	service := newService(newMemoryRepo(paid), nil)

	card, err := service.Get(context.Background(), nil, "p1")
	require.NoError(t, err)
	assert.False(t, card.Viewable)
	assert.Empty(t, card.Photo.ImageURL)
	assert.Equal(t, "https://cdn/p1", paid.ImageURL, "stored photo must not be mutated")

	card, err = service.Get(context.Background(), ptr("vip"), "p1")
	require.NoError(t, err)
	assert.True(t, card.Viewable)
	assert.Equal(t, "https://cdn/p1", card.Photo.ImageURL)
}

/*
TestGet_HiddenOnlyForOwner reports hidden photos as missing to others.
*/
func TestGet_HiddenOnlyForOwner(t *testing.T) {
	hidden := fixture("p1", "owner", 1500, access.TierFree, nil)
	hidden.Status = photo.StatusHidden
	service := newService(newMemoryRepo(hidden), nil)

	_, err := service.Get(context.Background(), ptr("someone"), "p1")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	card, err := service.Get(context.Background(), ptr("owner"), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", card.Photo.ID)
}

/*
TestResolveAccess answers every requested id, unknown ones with false.
*/
func TestResolveAccess(t *testing.T) {
	const (
		freeID    = "0190b1a2-7c3d-7e4f-8a9b-000000000001"
		paidID    = "0190b1a2-7c3d-7e4f-8a9b-000000000002"
		missingID = "0190b1a2-7c3d-7e4f-8a9b-000000000003"
	)
	service := newService(newMemoryRepo(
		fixture(freeID, "o", 1500, access.TierFree, nil),
		fixture(paidID, "o", 1500, access.TierPaid, nil),
	), nil)

	result, err := service.ResolveAccess(context.Background(), nil, []string{freeID, paidID, missingID})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{freeID: true, paidID: false, missingID: false}, result)

	_, err = service.ResolveAccess(context.Background(), nil, []string{"nope"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestRanking_OrderFilterAndCache sorts by rating, honours the tag filter and
serves repeats from cache.
*/
func TestRanking_OrderFilterAndCache(t *testing.T) {
	repo := newMemoryRepo(
		fixture("a", "o", 1600, access.TierFree, map[string]string{"character": "Rei"}),
		fixture("b", "o", 1700, access.TierPaid, nil),
		fixture("c", "o", 1500, access.TierFree, map[string]string{"character": "Asuka"}),
	)
	cache := &memoryCache{entries: map[string][]*photo.Photo{}}
	service := newService(repo, cache)

	cards, err := service.Ranking(context.Background(), nil, "", 10)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{cards[0].Photo.ID, cards[1].Photo.ID, cards[2].Photo.ID})
	assert.False(t, cards[0].Viewable)
	assert.Empty(t, cards[0].Photo.ImageURL)

	_, err = service.Ranking(context.Background(), nil, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.topCalls, "second call served from cache")

	cards, err = service.Ranking(context.Background(), nil, "Character", 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].Photo.ID)

	_, err = service.Ranking(context.Background(), nil, "colour", 10)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestSetStatus_InvalidatesRanking drops cached rankings after moderation.
*/
func TestSetStatus_InvalidatesRanking(t *testing.T) {
	repo := newMemoryRepo(fixture("a", "o", 1600, access.TierFree, nil))
	cache := &memoryCache{entries: map[string][]*photo.Photo{}}
	service := newService(repo, cache)

	_, err := service.Ranking(context.Background(), nil, "", 10)
	require.NoError(t, err)

	require.NoError(t, service.SetStatus(context.Background(), "a", photo.StatusHidden))
	assert.Equal(t, 1, cache.invalidated)

	cards, err := service.Ranking(context.Background(), nil, "", 10)
	require.NoError(t, err)
	assert.Empty(t, cards)

	err = service.SetStatus(context.Background(), "a", photo.Status("deleted"))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestListByOwner_HidesHiddenFromOthers includes hidden photos only for the owner.
*/
func TestListByOwner_HidesHiddenFromOthers(t *testing.T) {
	hidden := fixture("b", "o", 1500, access.TierFree, nil)
	hidden.Status = photo.StatusHidden
	service := newService(newMemoryRepo(fixture("a", "o", 1500, access.TierFree, nil), hidden), nil)
	params := pagination.New(1, 20)

	cards, total, err := service.ListByOwner(context.Background(), ptr("x"), "o", params)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, cards, 1)

	_, total, err = service.ListByOwner(context.Background(), ptr("o"), "o", params)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
