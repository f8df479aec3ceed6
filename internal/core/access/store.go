// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"time"
)

// # Entitlement Data Access

// EntitlementStore answers batched relationship questions for one viewer.
//
// Every method takes the full set of distinct identifiers referenced by a
// resolution run, so the number of round-trips is independent of batch size.
type EntitlementStore interface {

	/*
		FollowedOwners returns the subset of ownerIDs the viewer follows.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - ownerIDs: []string (distinct)

		Returns:
		  - IDSet: Followed owner IDs
		  - error: Database retrieval failures
	*/
	FollowedOwners(context context.Context, viewerID string, ownerIDs []string) (IDSet, error)

	/*
		SubscribedOwners returns the subset of ownerIDs with a subscription from
		the viewer whose expiry is strictly after now.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - ownerIDs: []string (distinct)
		  - now: time.Time (evaluation instant)

		Returns:
		  - IDSet: Owner IDs with an active subscription
		  - error: Database retrieval failures
	*/
	SubscribedOwners(context context.Context, viewerID string, ownerIDs []string, now time.Time) (IDSet, error)

	/*
		PurchasedPhotos returns the subset of photoIDs the viewer bought.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - photoIDs: []string (distinct)

		Returns:
		  - IDSet: Purchased photo IDs
		  - error: Database retrieval failures
	*/
	PurchasedPhotos(context context.Context, viewerID string, photoIDs []string) (IDSet, error)
}
