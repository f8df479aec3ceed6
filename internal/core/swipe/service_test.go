// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package swipe_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/core/swipe"
	"github.com/taibuivan/snapduel/internal/platform/apperr"
)

// # Fakes

type memoryStore struct {
	photos    []*photo.Photo
	judgments []swipe.Judgment
	lastQuery photo.PoolQuery
}

func (store *memoryStore) ListByStatus(_ context.Context, status photo.Status, query photo.PoolQuery) ([]*photo.Photo, error) {
	store.lastQuery = query
	excluded := access.NewIDSet(query.ExcludeIDs...)

	var out []*photo.Photo
	for _, p := range store.photos {
		if p.Status != status || excluded.Has(p.ID) {
			continue
		}
		if len(query.Tiers) > 0 && p.Tier != query.Tiers[0] {
			continue
		}
		out = append(out, p)
		if len(out) == query.Limit {
			break
		}
	}
	return out, nil
}

func (store *memoryStore) InsertJudgment(_ context.Context, judgment swipe.Judgment) error {
	for _, p := range store.photos {
		if p.ID == judgment.PhotoID && p.Status == photo.StatusActive {
			store.judgments = append(store.judgments, judgment)
			return nil
		}
	}
	return apperr.NotFound("Photo")
}

func (store *memoryStore) JudgedPhotoIDs(_ context.Context, viewerID string) (access.IDSet, error) {
	judged := access.IDSet{}
	for _, j := range store.judgments {
		if j.ViewerID == viewerID {
			judged.Add(j.PhotoID)
		}
	}
	return judged, nil
}

type freeOnly struct{}

func (freeOnly) Resolve(_ context.Context, _ *string, items []access.Item) map[string]bool {
	out := map[string]bool{}
	for _, item := range items {
		out[item.ID] = item.Tier == access.TierFree
	}
	return out
}

func photoID(index int) string {
	return fmt.Sprintf("0190b1a2-7c3d-7e4f-8a9b-%012d", index)
}

func catalog(count int, tier access.Tier) []*photo.Photo {
	photos := make([]*photo.Photo, count)
	for index := range photos {
		photos[index] = &photo.Photo{
			ID: photoID(index), OwnerID: "owner", ImageURL: "https://cdn/x",
			Rating: 1500, Tier: tier, Status: photo.StatusActive,
		}
	}
	return photos
}

func newService(store *memoryStore) *swipe.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return swipe.NewService(store, store, freeOnly{}, logger,
		swipe.WithShuffler(rand.New(rand.NewPCG(3, 5))))
}

func ptr(s string) *string { return &s }

func cardIDs(deck swipe.Deck) []string {
	ids := make([]string, len(deck.Cards))
	for index, card := range deck.Cards {
		ids[index] = card.Photo.ID
	}
	return ids
}

// # Selector

/*
TestSelectDeck_ExcludesAndTruncates keeps at most size unexcluded photos.
*/
func TestSelectDeck_ExcludesAndTruncates(t *testing.T) {
	pool := catalog(12, access.TierFree)
	exclude := access.NewIDSet(photoID(0), photoID(1))

	deck := swipe.SelectDeck(pool, exclude, 5, rand.New(rand.NewPCG(1, 1)))

	assert.Len(t, deck, 5)
	for _, p := range deck {
		assert.False(t, exclude.Has(p.ID))
	}
}

/*
TestSelectDeck_ExcludeEverything returns an empty list, not an error.
*/
func TestSelectDeck_ExcludeEverything(t *testing.T) {
	pool := catalog(4, access.TierFree)
	exclude := access.IDSet{}
	for _, p := range pool {
		exclude.Add(p.ID)
	}

	deck := swipe.SelectDeck(pool, exclude, 10, rand.New(rand.NewPCG(1, 1)))

	assert.NotNil(t, deck)
	assert.Empty(t, deck)
}

/*
TestSelectDeck_NoDuplicates drops repeated pool entries.
*/
func TestSelectDeck_NoDuplicates(t *testing.T) {
	pool := catalog(3, access.TierFree)
	pool = append(pool, pool...)

	deck := swipe.SelectDeck(pool, nil, 10, rand.New(rand.NewPCG(1, 1)))

	assert.Len(t, deck, 3)
}

// # Service

/*
TestNextDeck_PoolIsMultipleOfSize asks the store for 3×N candidates.
*/
func TestNextDeck_PoolIsMultipleOfSize(t *testing.T) {
	store := &memoryStore{photos: catalog(100, access.TierFree)}

	deck, err := newService(store).NextDeck(context.Background(), nil, 0, nil)

	require.NoError(t, err)
	assert.Len(t, deck.Cards, swipe.DefaultDeckSize)
	assert.Equal(t, swipe.DefaultDeckSize*swipe.PoolMultiplier, store.lastQuery.Limit)
	assert.Equal(t, swipe.StateReady, deck.State)
	assert.Equal(t, swipe.RefillThreshold, deck.RefillThreshold)
}

/*
TestNextDeck_AnonymousFreeOnly never serves gated photos to anonymous viewers.
*/
func TestNextDeck_AnonymousFreeOnly(t *testing.T) {
	photos := append(catalog(3, access.TierFree), &photo.Photo{
		ID: photoID(50), OwnerID: "owner", Tier: access.TierPaid, Status: photo.StatusActive,
	})
	store := &memoryStore{photos: photos}

	deck, err := newService(store).NextDeck(context.Background(), nil, 10, nil)

	require.NoError(t, err)
	assert.NotContains(t, cardIDs(deck), photoID(50))
	assert.Equal(t, []access.Tier{access.TierFree}, store.lastQuery.Tiers)
	for _, card := range deck.Cards {
		assert.True(t, card.Viewable)
	}
}

/*
TestNextDeck_SkipsJudgedPhotos excludes everything the viewer already judged.
*/
func TestNextDeck_SkipsJudgedPhotos(t *testing.T) {
	store := &memoryStore{photos: catalog(6, access.TierFree)}
	service := newService(store)

	for index := 0; index < 4; index++ {
		_, err := service.RecordJudgment(context.Background(), "viewer", photoID(index), swipe.VerdictPass)
		require.NoError(t, err)
	}

	deck, err := service.NextDeck(context.Background(), ptr("viewer"), 10, nil)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{photoID(4), photoID(5)}, cardIDs(deck))

	// Another viewer's judgments do not affect this viewer.
	deck, err = service.NextDeck(context.Background(), ptr("other"), 10, nil)
	require.NoError(t, err)
	assert.Len(t, deck.Cards, 6)
}

/*
TestNextDeck_ExcludeWholePoolIsEmpty is a valid empty deck.
*/
func TestNextDeck_ExcludeWholePoolIsEmpty(t *testing.T) {
	store := &memoryStore{photos: catalog(3, access.TierFree)}

	deck, err := newService(store).NextDeck(context.Background(), nil, 10,
		[]string{photoID(0), photoID(1), photoID(2)})

	require.NoError(t, err)
	assert.True(t, deck.Empty)
	assert.Empty(t, deck.Cards)
	assert.Equal(t, swipe.StateEmpty, deck.State)
}

/*
TestNextDeck_FlagsGatedCards redacts photos the resolver denies.
*/
func TestNextDeck_FlagsGatedCards(t *testing.T) {
	store := &memoryStore{photos: catalog(2, access.TierFollower)}

	deck, err := newService(store).NextDeck(context.Background(), ptr("viewer"), 10, nil)

	require.NoError(t, err)
	require.Len(t, deck.Cards, 2)
	for _, card := range deck.Cards {
		assert.False(t, card.Viewable)
		assert.Empty(t, card.Photo.ImageURL)
	}
}

/*
TestNextDeck_TooManyExcludes rejects oversized exclusion lists.
*/
func TestNextDeck_TooManyExcludes(t *testing.T) {
	exclude := make([]string, swipe.MaxExcludeIDs+1)
	for index := range exclude {
		exclude[index] = photoID(index)
	}

	_, err := newService(&memoryStore{}).NextDeck(context.Background(), nil, 10, exclude)

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestRecordJudgment_Validation rejects unknown verdicts and photos.
*/
func TestRecordJudgment_Validation(t *testing.T) {
	store := &memoryStore{photos: catalog(1, access.TierFree)}
	service := newService(store)

	_, err := service.RecordJudgment(context.Background(), "viewer", photoID(0), swipe.Verdict("meh"))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.RecordJudgment(context.Background(), "viewer", photoID(9), swipe.VerdictLike)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	judgment, err := service.RecordJudgment(context.Background(), "viewer", photoID(0), swipe.VerdictLike)
	require.NoError(t, err)
	assert.Equal(t, swipe.VerdictLike, judgment.Verdict)
	assert.Equal(t, 1500, store.photos[0].Rating, "judgments never change ratings")
}

/*
TestRecordJudgment_InactivePhoto refuses judgments on photos that left the
active pool.
*/
func TestRecordJudgment_InactivePhoto(t *testing.T) {
	store := &memoryStore{photos: catalog(2, access.TierFree)}
	store.photos[0].Status = photo.StatusHidden
	service := newService(store)

	_, err := service.RecordJudgment(context.Background(), "viewer", photoID(0), swipe.VerdictLike)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), "got %v", err)
	assert.Empty(t, store.judgments)

	_, err = service.RecordJudgment(context.Background(), "viewer", photoID(1), swipe.VerdictLike)
	require.NoError(t, err)
	assert.Len(t, store.judgments, 1)
}
