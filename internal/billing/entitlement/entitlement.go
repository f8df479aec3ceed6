// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entitlement records the paid relationships that unlock gated photos.

Two grants exist:

  - Subscription: subscriber → creator, active while expires_at is in the
    future. Renewals and cancellations move expires_at.
  - Purchase: buyer → photo, a permanent unlock of one paid photo.

Grants are issued by an admin or a payment-provider bridge; the access
resolver only reads them.
*/
package entitlement

import (
	"context"
	"time"
)

// DefaultSubscriptionMonths is added to now when a grant carries no period end.
const DefaultSubscriptionMonths = 1

// Subscription is one subscriber→creator grant.
type Subscription struct {
	SubscriberID string    `json:"subscriber_id"`
	CreatorID    string    `json:"creator_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Active reports whether the subscription unlocks content at now.
func (subscription Subscription) Active(now time.Time) bool {
	return subscription.ExpiresAt.After(now)
}

// Purchase is a permanent unlock of one photo.
type Purchase struct {
	ID          string    `json:"id"`
	BuyerID     string    `json:"buyer_id"`
	PhotoID     string    `json:"photo_id"`
	AmountCents int64     `json:"amount_cents"`
	PaymentRef  string    `json:"payment_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubscriptionInput is the payload of a subscription grant.
type SubscriptionInput struct {
	SubscriberID string     `json:"subscriber_id"`
	CreatorID    string     `json:"creator_id"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"` // explicit period end
}

// PurchaseInput is the payload of a purchase grant.
type PurchaseInput struct {
	BuyerID     string `json:"buyer_id"`
	PhotoID     string `json:"photo_id"`
	AmountCents int64  `json:"amount_cents"`
	PaymentRef  string `json:"payment_ref"`
}

// Repository persists grants.
type Repository interface {
	// UpsertSubscription inserts or moves the expiry of a subscription.
	UpsertSubscription(context context.Context, subscription Subscription) error

	// InsertPurchase stores the purchase unless the same buyer already owns
	// the photo or the payment reference was seen; it reports whether a row was written.
	InsertPurchase(context context.Context, purchase Purchase) (bool, error)
}
