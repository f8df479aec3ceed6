// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snapduel/internal/core/access"
)

// fakeStore is an in-memory [access.EntitlementStore] that records calls.
type fakeStore struct {
	mu            sync.Mutex
	follows       map[string]access.IDSet         // viewer → owners
	subscriptions map[string]map[string]time.Time // viewer → owner → expiry
	purchases     map[string]access.IDSet         // viewer → photos

	followErr, subscriptionErr, purchaseErr error

	followCalls, subscriptionCalls, purchaseCalls int
	lastOwnerArgs                                 []string
	lastPhotoArgs                                 []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		follows:       map[string]access.IDSet{},
		subscriptions: map[string]map[string]time.Time{},
		purchases:     map[string]access.IDSet{},
	}
}

func (store *fakeStore) follow(viewer, owner string) {
	if store.follows[viewer] == nil {
		store.follows[viewer] = access.IDSet{}
	}
	store.follows[viewer].Add(owner)
}

func (store *fakeStore) unfollow(viewer, owner string) {
	delete(store.follows[viewer], owner)
}

func (store *fakeStore) subscribe(viewer, owner string, expires time.Time) {
	if store.subscriptions[viewer] == nil {
		store.subscriptions[viewer] = map[string]time.Time{}
	}
	store.subscriptions[viewer][owner] = expires
}

func (store *fakeStore) purchase(viewer, photo string) {
	if store.purchases[viewer] == nil {
		store.purchases[viewer] = access.IDSet{}
	}
	store.purchases[viewer].Add(photo)
}

func (store *fakeStore) FollowedOwners(_ context.Context, viewerID string, ownerIDs []string) (access.IDSet, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.followCalls++
	store.lastOwnerArgs = ownerIDs
	if store.followErr != nil {
		return nil, store.followErr
	}
	out := access.IDSet{}
	for _, owner := range ownerIDs {
		if store.follows[viewerID].Has(owner) {
			out.Add(owner)
		}
	}
	return out, nil
}

func (store *fakeStore) SubscribedOwners(_ context.Context, viewerID string, ownerIDs []string, now time.Time) (access.IDSet, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.subscriptionCalls++
	if store.subscriptionErr != nil {
		return nil, store.subscriptionErr
	}
	out := access.IDSet{}
	for _, owner := range ownerIDs {
		if expires, ok := store.subscriptions[viewerID][owner]; ok && expires.After(now) {
			out.Add(owner)
		}
	}
	return out, nil
}

func (store *fakeStore) PurchasedPhotos(_ context.Context, viewerID string, photoIDs []string) (access.IDSet, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.purchaseCalls++
	store.lastPhotoArgs = photoIDs
	if store.purchaseErr != nil {
		return nil, store.purchaseErr
	}
	out := access.IDSet{}
	for _, photo := range photoIDs {
		if store.purchases[viewerID].Has(photo) {
			out.Add(photo)
		}
	}
	return out, nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newResolver(store access.EntitlementStore) *access.Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return access.NewResolver(store, logger, access.WithClock(func() time.Time { return fixedNow }))
}

func ptr(s string) *string { return &s }

/*
TestResolve_FreeAlwaysViewable covers anonymous and authenticated viewers.
*/
func TestResolve_FreeAlwaysViewable(t *testing.T) {
	store := newFakeStore()
	resolver := newResolver(store)
	items := []access.Item{{ID: "p1", OwnerID: "o1", Tier: access.TierFree}}

	for _, viewer := range []*string{nil, ptr("v1")} {
		result := resolver.Resolve(context.Background(), viewer, items)
		assert.True(t, result["p1"])
	}

	assert.Zero(t, store.followCalls+store.subscriptionCalls+store.purchaseCalls)
}

/*
TestResolve_AnonymousDegradesToFreeOnly never touches the store.
*/
func TestResolve_AnonymousDegradesToFreeOnly(t *testing.T) {
	store := newFakeStore()
	resolver := newResolver(store)

	result := resolver.Resolve(context.Background(), nil, []access.Item{
		{ID: "free", OwnerID: "o1", Tier: access.TierFree},
		{ID: "fol", OwnerID: "o1", Tier: access.TierFollower},
		{ID: "paid", OwnerID: "o1", Tier: access.TierPaid},
	})

	assert.Equal(t, map[string]bool{"free": true, "fol": false, "paid": false}, result)
	assert.Zero(t, store.followCalls+store.subscriptionCalls+store.purchaseCalls)
}

/*
TestResolve_Policy walks through each tier's entitlement rule.
*/
func TestResolve_Policy(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *fakeStore)
		item  access.Item
		want  bool
	}{
		{
			name:  "follower_without_follow",
			setup: func(*fakeStore) {},
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierFollower},
			want:  false,
		},
		{
			name:  "follower_with_follow",
			setup: func(store *fakeStore) { store.follow("v", "o") },
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierFollower},
			want:  true,
		},
		{
			name:  "paid_with_active_subscription",
			setup: func(store *fakeStore) { store.subscribe("v", "o", fixedNow.Add(time.Hour)) },
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierPaid},
			want:  true,
		},
		{
			name:  "paid_with_expired_subscription",
			setup: func(store *fakeStore) { store.subscribe("v", "o", fixedNow.Add(-time.Hour)) },
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierPaid},
			want:  false,
		},
		{
			name:  "paid_subscription_expiring_exactly_now",
			setup: func(store *fakeStore) { store.subscribe("v", "o", fixedNow) },
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierPaid},
			want:  false,
		},
		{
			name:  "paid_with_purchase",
			setup: func(store *fakeStore) { store.purchase("v", "p") },
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierPaid},
			want:  true,
		},
		{
			name:  "paid_purchase_of_other_photo",
			setup: func(store *fakeStore) { store.purchase("v", "other") },
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierPaid},
			want:  false,
		},
		{
			name:  "paid_follow_is_not_enough",
			setup: func(store *fakeStore) { store.follow("v", "o") },
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.TierPaid},
			want:  false,
		},
		{
			name:  "owner_sees_own_paid_photo",
			setup: func(*fakeStore) {},
			item:  access.Item{ID: "p", OwnerID: "v", Tier: access.TierPaid},
			want:  true,
		},
		{
			name:  "unknown_tier_denied",
			setup: func(*fakeStore) {},
			item:  access.Item{ID: "p", OwnerID: "o", Tier: access.Tier("secret")},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tt.setup(store)

			result := newResolver(store).Resolve(context.Background(), ptr("v"), []access.Item{tt.item})

			assert.Equal(t, tt.want, result[tt.item.ID])
		})
	}
}

/*
TestResolve_FollowThenUnfollow reflects the relationship change on the next call.
*/
func TestResolve_FollowThenUnfollow(t *testing.T) {
	store := newFakeStore()
	resolver := newResolver(store)
	items := []access.Item{{ID: "p", OwnerID: "o", Tier: access.TierFollower}}

	store.follow("v", "o")
	assert.True(t, resolver.Resolve(context.Background(), ptr("v"), items)["p"])

	store.unfollow("v", "o")
	assert.False(t, resolver.Resolve(context.Background(), ptr("v"), items)["p"])
}

/*
TestResolve_Batched issues one lookup per kind over distinct ids.
*/
func TestResolve_Batched(t *testing.T) {
	store := newFakeStore()
	store.follow("v", "o1")
	resolver := newResolver(store)

	var items []access.Item
	for i := 0; i < 50; i++ {
		owner := "o1"
		if i%2 == 0 {
			owner = "o2"
		}
		items = append(items, access.Item{ID: string(rune('A' + i)), OwnerID: owner, Tier: access.TierFollower})
	}
	items = append(items,
		access.Item{ID: "paid1", OwnerID: "o3", Tier: access.TierPaid},
		access.Item{ID: "paid2", OwnerID: "o3", Tier: access.TierPaid},
	)

	result := resolver.Resolve(context.Background(), ptr("v"), items)

	assert.Equal(t, 1, store.followCalls)
	assert.Equal(t, 1, store.subscriptionCalls)
	assert.Equal(t, 1, store.purchaseCalls)

	owners := append([]string(nil), store.lastOwnerArgs...)
	sort.Strings(owners)
	assert.Equal(t, []string{"o1", "o2"}, owners)
	assert.Len(t, store.lastPhotoArgs, 2)

	assert.Len(t, result, len(items))
	for _, item := range items[:50] {
		assert.Equal(t, item.OwnerID == "o1", result[item.ID], item.ID)
	}
}

/*
TestResolve_SkipsPurchaseLookupWhenSubscribed avoids the purchase query when the
subscription already covers every paid item.
*/
func TestResolve_SkipsPurchaseLookupWhenSubscribed(t *testing.T) {
	store := newFakeStore()
	store.subscribe("v", "o", fixedNow.Add(24*time.Hour))

	result := newResolver(store).Resolve(context.Background(), ptr("v"), []access.Item{
		{ID: "p1", OwnerID: "o", Tier: access.TierPaid},
		{ID: "p2", OwnerID: "o", Tier: access.TierPaid},
	})

	assert.True(t, result["p1"])
	assert.True(t, result["p2"])
	assert.Zero(t, store.purchaseCalls)
	assert.Zero(t, store.followCalls)
}

/*
TestResolve_FailClosed denies gated items when a lookup errors, without
affecting free items or unrelated lookups.
*/
func TestResolve_FailClosed(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name   string
		inject func(store *fakeStore)
		want   map[string]bool
	}{
		{
			name:   "follows_down",
			inject: func(store *fakeStore) { store.followErr = boom },
			want:   map[string]bool{"free": true, "fol": false, "paid": true},
		},
		{
			name:   "subscriptions_down_purchase_still_counts",
			inject: func(store *fakeStore) { store.subscriptionErr = boom },
			want:   map[string]bool{"free": true, "fol": true, "paid": true},
		},
		{
			name: "subscriptions_and_purchases_down",
			inject: func(store *fakeStore) {
				store.subscriptionErr = boom
				store.purchaseErr = boom
			},
			want: map[string]bool{"free": true, "fol": true, "paid": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.follow("v", "o")
			store.purchase("v", "paid")
			tt.inject(store)

			result := newResolver(store).Resolve(context.Background(), ptr("v"), []access.Item{
				{ID: "free", OwnerID: "o", Tier: access.TierFree},
				{ID: "fol", OwnerID: "o", Tier: access.TierFollower},
				{ID: "paid", OwnerID: "o2", Tier: access.TierPaid},
			})

			assert.Equal(t, tt.want, result)
		})
	}
}

/*
TestBreakerStore_OpensAndFailsClosed trips after consecutive failures and then
rejects without calling the underlying store.
*/
func TestBreakerStore_OpensAndFailsClosed(t *testing.T) {
	store := newFakeStore()
	store.followErr = errors.New("timeout")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	guarded := access.NewBreakerStore(store, access.BreakerSettings{
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	}, logger)

	for i := 0; i < 2; i++ {
		_, err := guarded.FollowedOwners(context.Background(), "v", []string{"o"})
		require.Error(t, err)
	}
	assert.Equal(t, 2, store.followCalls)

	_, err := guarded.FollowedOwners(context.Background(), "v", []string{"o"})
	require.Error(t, err)
	assert.Equal(t, 2, store.followCalls, "open breaker must not reach the store")

	store.followErr = nil
	store.follow("v", "o")
	result := access.NewResolver(guarded, logger).Resolve(context.Background(), ptr("v"), []access.Item{
		{ID: "p", OwnerID: "o", Tier: access.TierFollower},
	})
	assert.False(t, result["p"])
}
