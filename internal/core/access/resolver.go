// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/snapduel/internal/platform/metrics"
)

// Lookup names used in logs and the fail-closed counter.
const (
	lookupFollows       = "follows"
	lookupSubscriptions = "subscriptions"
	lookupPurchases     = "purchases"
)

// Resolver evaluates the access policy for a batch of photos.
type Resolver struct {
	store  EntitlementStore
	now    func() time.Time
	logger *slog.Logger
}

// Option customises a [Resolver].
type Option func(*Resolver)

// WithClock replaces the wall clock used for subscription expiry checks.
func WithClock(now func() time.Time) Option {
	return func(resolver *Resolver) { resolver.now = now }
}

// NewResolver constructs a resolver reading entitlements from store.
func NewResolver(store EntitlementStore, logger *slog.Logger, opts ...Option) *Resolver {
	resolver := &Resolver{store: store, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

/*
Resolve decides viewability for every item in one batched pass.

Description: Entitlements are gathered with at most three lookups (follows,
subscriptions, purchases) over the distinct owner and photo ids in the
batch. Lookups are skipped when no item needs them, and purchases are only
checked for paid items whose owner the viewer is not subscribed to. Any lookup
failure denies exactly the items that depended on it.

Parameters:
  - context: context.Context
  - viewerID: *string (nil for anonymous)
  - items: []Item

Returns:
  - map[string]bool: item id → viewable, one entry per distinct item id
*/
func (resolver *Resolver) Resolve(context context.Context, viewerID *string, items []Item) map[string]bool {
	result := make(map[string]bool, len(items))

	// ── 1. Classify: settle what needs no lookup, collect the rest ──
	followerOwners := make(IDSet)
	paidOwners := make(IDSet)
	pending := make([]Item, 0, len(items))

	for _, item := range items {
		switch {
		case item.Tier == TierFree:
			result[item.ID] = true
		case !item.Tier.Valid():
			result[item.ID] = false
		case viewerID == nil:
			result[item.ID] = false
		case item.OwnerID == *viewerID:
			result[item.ID] = true
		case item.Tier == TierFollower:
			followerOwners.Add(item.OwnerID)
			pending = append(pending, item)
		case item.Tier == TierPaid:
			paidOwners.Add(item.OwnerID)
			pending = append(pending, item)
		}
	}

	if len(pending) > 0 {
		viewer := *viewerID

		// ── 2. Follow and subscription lookups over distinct owners ──
		var followed, subscribed IDSet
		if len(followerOwners) > 0 {
			followed = resolver.lookup(context, lookupFollows, viewer, func() (IDSet, error) {
				return resolver.store.FollowedOwners(context, viewer, followerOwners.Slice())
			})
		}
		if len(paidOwners) > 0 {
			now := resolver.now()
			subscribed = resolver.lookup(context, lookupSubscriptions, viewer, func() (IDSet, error) {
				return resolver.store.SubscribedOwners(context, viewer, paidOwners.Slice(), now)
			})
		}

		// ── 3. Purchases, only where a subscription does not already grant access ──
		unpaid := make(IDSet)
		for _, item := range pending {
			if item.Tier == TierPaid && !subscribed.Has(item.OwnerID) {
				unpaid.Add(item.ID)
			}
		}

		var purchased IDSet
		if len(unpaid) > 0 {
			purchased = resolver.lookup(context, lookupPurchases, viewer, func() (IDSet, error) {
				return resolver.store.PurchasedPhotos(context, viewer, unpaid.Slice())
			})
		}

		// ── 4. Decide ──
		for _, item := range pending {
			switch item.Tier {
			case TierFollower:
				result[item.ID] = followed.Has(item.OwnerID)
			case TierPaid:
				result[item.ID] = subscribed.Has(item.OwnerID) || purchased.Has(item.ID)
			}
		}
	}

	for _, item := range items {
		metrics.RecordAccessDecision(string(item.Tier), result[item.ID])
	}

	return result
}

// lookup runs fetch and converts any failure into an empty set.
func (resolver *Resolver) lookup(context context.Context, name, viewerID string, fetch func() (IDSet, error)) IDSet {
	set, err := fetch()
	if err != nil {
		metrics.AccessFailClosedTotal.WithLabelValues(name).Inc()
		resolver.logger.WarnContext(context, "access_fail_closed",
			slog.String("lookup", name),
			slog.String("viewer_id", viewerID),
			slog.Any("error", err),
		)
		return nil
	}
	return set
}
