// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit guarding entitlement lookups.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker when reached.
	ConsecutiveFailures uint32

	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// BreakerStore wraps an [EntitlementStore] with a circuit breaker.
//
// While open, every lookup fails immediately with [gobreaker.ErrOpenState];
// the resolver treats that like any other error and denies the gated items.
type BreakerStore struct {
	next    EntitlementStore
	breaker *gobreaker.CircuitBreaker[IDSet]
}

// NewBreakerStore wraps next with a breaker named "entitlements".
func NewBreakerStore(next EntitlementStore, settings BreakerSettings, logger *slog.Logger) *BreakerStore {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[IDSet](gobreaker.Settings{
		Name:        "entitlements",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up is not a sign of an unhealthy database.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &BreakerStore{next: next, breaker: breaker}
}

// FollowedOwners implements [EntitlementStore].
func (store *BreakerStore) FollowedOwners(context context.Context, viewerID string, ownerIDs []string) (IDSet, error) {
	return store.breaker.Execute(func() (IDSet, error) {
		return store.next.FollowedOwners(context, viewerID, ownerIDs)
	})
}

// SubscribedOwners implements [EntitlementStore].
func (store *BreakerStore) SubscribedOwners(context context.Context, viewerID string, ownerIDs []string, now time.Time) (IDSet, error) {
	return store.breaker.Execute(func() (IDSet, error) {
		return store.next.SubscribedOwners(context, viewerID, ownerIDs, now)
	})
}

// PurchasedPhotos implements [EntitlementStore].
func (store *BreakerStore) PurchasedPhotos(context context.Context, viewerID string, photoIDs []string) (IDSet, error) {
	return store.breaker.Execute(func() (IDSet, error) {
		return store.next.PurchasedPhotos(context, viewerID, photoIDs)
	})
}

// State exposes the breaker state for readiness reporting.
func (store *BreakerStore) State() gobreaker.State {
	return store.breaker.State()
}
