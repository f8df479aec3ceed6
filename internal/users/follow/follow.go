// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package follow manages the follower graph.

An edge follower→followee unlocks the followee's follower-tier photos for the
follower. Edges are unique and take effect on the next access resolution.
*/
package follow

import (
	"context"
	"time"
)

// Edge is one directed follow relationship.
type Edge struct {
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository defines persistence for follow edges.
type Repository interface {
	// Insert stores the edge; an existing edge is left untouched and reported as false.
	Insert(context context.Context, edge Edge) (bool, error)

	// Delete removes the edge and reports whether one existed.
	Delete(context context.Context, followerID, followeeID string) (bool, error)
}
