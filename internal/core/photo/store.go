// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photo

import (
	"context"
	"time"
)

// # Photo Data Access

// Repository defines the persistence operations for photos.
type Repository interface {

	/*
		Create inserts a new photo row.

		Parameters:
		  - context: context.Context
		  - photo: *Photo (ID, rating and status already set)

		Returns:
		  - error: Conflict or database failures
	*/
	Create(context context.Context, photo *Photo) error

	/*
		FindByID retrieves one photo regardless of status.

		Returns:
		  - *Photo: The photo
		  - error: NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*Photo, error)

	/*
		FindByIDs retrieves the photos that exist among ids. Order is unspecified.
	*/
	FindByIDs(context context.Context, ids []string) ([]*Photo, error)

	/*
		ListByStatus returns candidate photos with the given status.

		Parameters:
		  - context: context.Context
		  - status: Status
		  - query: PoolQuery (tiers, exclusions, limit, sampling)

		Returns:
		  - []*Photo: Matching photos
		  - error: Database failures
	*/
	ListByStatus(context context.Context, status Status, query PoolQuery) ([]*Photo, error)

	/*
		ListByOwner returns one page of an owner's photos, newest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - includeHidden: bool
		  - limit, offset: int

		Returns:
		  - []*Photo: The page
		  - int: Total matching rows
		  - error: Database failures
	*/
	ListByOwner(context context.Context, ownerID string, includeHidden bool, limit, offset int) ([]*Photo, int, error)

	/*
		TopRated returns active photos ordered by rating descending.

		Parameters:
		  - context: context.Context
		  - tagKey: string (empty for no filter; otherwise the tag must be non-empty)
		  - limit: int

		Returns:
		  - []*Photo: Highest rated first, ties broken by id
		  - error: Database failures
	*/
	TopRated(context context.Context, tagKey string, limit int) ([]*Photo, error)

	/*
		UpdateStatus moves a photo between active and hidden.

		Returns:
		  - error: NotFound or database failures
	*/
	UpdateStatus(context context.Context, id string, status Status) error
}

// # Ranking Cache

// RankingCache stores computed rankings for a short time.
type RankingCache interface {
	Get(context context.Context, key string) ([]*Photo, bool, error)
	Set(context context.Context, key string, photos []*Photo, ttl time.Duration) error
	Invalidate(context context.Context) error
}
