// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entitlement

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/validate"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

const (
	kindSubscription = "subscription"
	kindPurchase     = "purchase"

	maxPaymentRefLength = 255
)

// Service applies grant state transitions.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

// Option customises a [Service].
type Option func(*Service)

// WithClock replaces the clock used for default expiries and timestamps.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs an entitlement [Service].
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{repo: repo, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

/*
GrantSubscription creates or renews a subscription.

Description: Without an explicit period end the subscription runs one month
from now. An explicit end in the past is accepted and ends access at once.

Returns:
  - Subscription: The stored grant
  - error: Validation, Conflict (self-subscription), NotFound (unknown account)
*/
func (service *Service) GrantSubscription(context context.Context, input SubscriptionInput) (Subscription, error) {
	validator := &validate.Validator{}
	validator.UUID("subscriber_id", input.SubscriberID).UUID("creator_id", input.CreatorID)
	if err := validator.Err(); err != nil {
		metrics.EntitlementGrantsTotal.WithLabelValues(kindSubscription, metrics.ResultRejected).Inc()
		return Subscription{}, err
	}

	if input.SubscriberID == input.CreatorID {
		metrics.EntitlementGrantsTotal.WithLabelValues(kindSubscription, metrics.ResultRejected).Inc()
		return Subscription{}, apperr.Conflict("Creators cannot subscribe to themselves")
	}

	expiresAt := service.now().UTC().AddDate(0, DefaultSubscriptionMonths, 0)
	if input.ExpiresAt != nil {
		expiresAt = input.ExpiresAt.UTC()
	}

	subscription := Subscription{
		SubscriberID: input.SubscriberID,
		CreatorID:    input.CreatorID,
		ExpiresAt:    expiresAt,
	}

	if err := service.repo.UpsertSubscription(context, subscription); err != nil {
		metrics.EntitlementGrantsTotal.WithLabelValues(kindSubscription, metrics.ResultFailed).Inc()
		return Subscription{}, err
	}

	metrics.EntitlementGrantsTotal.WithLabelValues(kindSubscription, metrics.ResultRecorded).Inc()
	service.logger.InfoContext(context, "subscription_granted",
		slog.String("subscriber_id", subscription.SubscriberID),
		slog.String("creator_id", subscription.CreatorID),
		slog.Time("expires_at", subscription.ExpiresAt),
	)

	return subscription, nil
}

/*
RecordPurchase stores a permanent photo unlock.

Description: Replays of the same payment or a second purchase of an owned
photo are accepted without writing; created reports which case applied.

Returns:
  - Purchase: The requested grant
  - bool: true when a new row was written
  - error: Validation or NotFound (unknown buyer or photo)
*/
func (service *Service) RecordPurchase(context context.Context, input PurchaseInput) (Purchase, bool, error) {
	input.PaymentRef = strings.TrimSpace(input.PaymentRef)

	validator := &validate.Validator{}
	validator.UUID("buyer_id", input.BuyerID).
		UUID("photo_id", input.PhotoID).
		Custom("amount_cents", input.AmountCents < 0, "Must not be negative").
		MaxLen("payment_ref", input.PaymentRef, maxPaymentRefLength)
	if err := validator.Err(); err != nil {
		metrics.EntitlementGrantsTotal.WithLabelValues(kindPurchase, metrics.ResultRejected).Inc()
		return Purchase{}, false, err
	}

	purchase := Purchase{
		ID:          uuid.New(),
		BuyerID:     input.BuyerID,
		PhotoID:     input.PhotoID,
		AmountCents: input.AmountCents,
		PaymentRef:  input.PaymentRef,
		CreatedAt:   service.now().UTC(),
	}

	created, err := service.repo.InsertPurchase(context, purchase)
	if err != nil {
		metrics.EntitlementGrantsTotal.WithLabelValues(kindPurchase, metrics.ResultFailed).Inc()
		return Purchase{}, false, err
	}

	if !created {
		metrics.EntitlementGrantsTotal.WithLabelValues(kindPurchase, metrics.ResultDuplicate).Inc()
		return purchase, false, nil
	}

	metrics.EntitlementGrantsTotal.WithLabelValues(kindPurchase, metrics.ResultRecorded).Inc()
	service.logger.InfoContext(context, "purchase_recorded",
		slog.String("purchase_id", purchase.ID),
		slog.String("buyer_id", purchase.BuyerID),
		slog.String("photo_id", purchase.PhotoID),
		slog.Int64("amount_cents", purchase.AmountCents),
	)

	return purchase, true, nil
}
