// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access decides, per viewer and per photo, whether content may be shown.

# Policy

  - free: always viewable, including for anonymous viewers.
  - follower: viewable iff the viewer follows the owner.
  - paid: viewable iff the viewer holds an active subscription to the owner
    (expiry strictly after the evaluation instant) or purchased the photo.

Owners always see their own photos. Anonymous viewers degrade to free-only.

# Failure Mode

Entitlement lookups fail closed: an error, a timeout or an open circuit breaker
makes the affected photos not viewable. The resolver never returns an error, so
gated content cannot leak through an error path.

# Caching

Nothing is cached across calls. Each [Resolver.Resolve] run reads follows,
subscriptions and purchases afresh.
*/
package access

// # Tiers

// Tier is the visibility class of a photo.
type Tier string

const (
	TierFree     Tier = "free"
	TierFollower Tier = "follower"
	TierPaid     Tier = "paid"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierFollower, TierPaid:
		return true
	}
	return false
}

// # Resolver Input

// Item is the minimal view of a photo the resolver needs.
type Item struct {
	ID      string
	OwnerID string
	Tier    Tier
}

// # ID Sets

// IDSet is a set of identifiers returned by entitlement lookups.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set. A nil set contains nothing.
func (set IDSet) Has(id string) bool {
	_, ok := set[id]
	return ok
}

// Add inserts id into the set.
func (set IDSet) Add(id string) {
	set[id] = struct{}{}
}

// Slice returns the members in unspecified order.
func (set IDSet) Slice() []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
