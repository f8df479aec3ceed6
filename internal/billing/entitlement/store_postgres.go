// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entitlement

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/platform/database/schema"
	"github.com/taibuivan/snapduel/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the billing schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// UpsertSubscription keys on (subscriber, creator).
func (repository *PostgresRepository) UpsertSubscription(context context.Context, subscription Subscription) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = NOW()`,
		schema.BillingSubscription.Table,
		schema.BillingSubscription.SubscriberID, schema.BillingSubscription.CreatorID,
		schema.BillingSubscription.ExpiresAt, schema.BillingSubscription.CreatedAt, schema.BillingSubscription.UpdatedAt,
		schema.BillingSubscription.SubscriberID, schema.BillingSubscription.CreatorID,
		schema.BillingSubscription.ExpiresAt, schema.BillingSubscription.ExpiresAt, schema.BillingSubscription.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		subscription.SubscriberID, subscription.CreatorID, subscription.ExpiresAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_subscription")
	}

	return nil
}

// InsertPurchase relies on the unique (buyer, photo) and payment reference constraints.
func (repository *PostgresRepository) InsertPurchase(context context.Context, purchase Purchase) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		ON CONFLICT DO NOTHING`,
		schema.BillingPurchase.Table,
		schema.BillingPurchase.ID, schema.BillingPurchase.BuyerID, schema.BillingPurchase.PhotoID,
		schema.BillingPurchase.AmountCents, schema.BillingPurchase.PaymentRef, schema.BillingPurchase.CreatedAt,
	)

	tag, err := repository.pool.Exec(context, query,
		purchase.ID, purchase.BuyerID, purchase.PhotoID,
		purchase.AmountCents, purchase.PaymentRef, purchase.CreatedAt,
	)
	if err != nil {
		return false, dberr.Wrap(err, "insert_purchase")
	}

	return tag.RowsAffected() == 1, nil
}
