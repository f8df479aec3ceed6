// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/snapduel/internal/platform/database/schema"
	"github.com/taibuivan/snapduel/internal/platform/dberr"
)

// PostgresEntitlementStore implements [EntitlementStore] using pgx.
type PostgresEntitlementStore struct {
	db *pgxpool.Pool
}

// NewPostgresEntitlementStore constructs a PostgreSQL backed entitlement reader.
func NewPostgresEntitlementStore(db *pgxpool.Pool) *PostgresEntitlementStore {
	return &PostgresEntitlementStore{db: db}
}

/*
FollowedOwners reads follow edges from the viewer to any of ownerIDs.

Description: One indexed lookup on the (followerid, followeeid) primary key.
*/
func (store *PostgresEntitlementStore) FollowedOwners(context context.Context, viewerID string, ownerIDs []string) (IDSet, error) {
	query := fmt.Sprintf(`
		SELECT %s::text
		FROM %s
		WHERE %s = $1 AND %s = ANY($2::uuid[])
	`,
		schema.UserFollow.FolloweeID, schema.UserFollow.Table,
		schema.UserFollow.FollowerID, schema.UserFollow.FolloweeID,
	)
	return store.collect(context, "list_followed_owners", query, viewerID, ownerIDs)
}

/*
SubscribedOwners reads subscriptions from the viewer to any of ownerIDs that
expire strictly after now.

Description: now is passed in rather than using NOW() so the evaluation
instant is the resolver's, not the database's.
*/
func (store *PostgresEntitlementStore) SubscribedOwners(context context.Context, viewerID string, ownerIDs []string, now time.Time) (IDSet, error) {
	query := fmt.Sprintf(`
		SELECT %s::text
		FROM %s
		WHERE %s = $1 AND %s = ANY($2::uuid[]) AND %s > $3
	`,
		schema.BillingSubscription.CreatorID, schema.BillingSubscription.Table,
		schema.BillingSubscription.SubscriberID, schema.BillingSubscription.CreatorID,
		schema.BillingSubscription.ExpiresAt,
	)
	return store.collect(context, "list_subscribed_owners", query, viewerID, ownerIDs, now)
}

/*
PurchasedPhotos reads one-off purchases by the viewer for any of photoIDs.
*/
func (store *PostgresEntitlementStore) PurchasedPhotos(context context.Context, viewerID string, photoIDs []string) (IDSet, error) {
	query := fmt.Sprintf(`
		SELECT %s::text
		FROM %s
		WHERE %s = $1 AND %s = ANY($2::uuid[])
	`,
		schema.BillingPurchase.PhotoID, schema.BillingPurchase.Table,
		schema.BillingPurchase.BuyerID, schema.BillingPurchase.PhotoID,
	)
	return store.collect(context, "list_purchased_photos", query, viewerID, photoIDs)
}

// collect runs a single-column query and gathers the result into an [IDSet].
func (store *PostgresEntitlementStore) collect(context context.Context, action, query string, args ...any) (IDSet, error) {
	rows, err := store.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	set := make(IDSet)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		set.Add(id)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return set, nil
}
