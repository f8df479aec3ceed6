// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package battle serves pairwise photo battles and records their outcomes.

# Pairing

[SelectPair] prefers photos with adjacent ratings so every battle is
informative. Small pools fall back to a uniform random pair.

# Recording

A comparison is applied atomically: both rating updates and the outcome row
commit together or not at all. Concurrent comparisons touching the same photo
serialise on row locks, and a version column guards every rating write.
*/
package battle

import (
	"errors"
	"time"

	"github.com/taibuivan/snapduel/internal/core/photo"
)

// ErrEmpty reports that fewer than two photos are available to the viewer.
// It is a normal outcome, not a failure.
var ErrEmpty = errors.New("battle: not enough photos for a pair")

const (
	// MinPoolForRatingPairing is the smallest pool paired by rating adjacency.
	MinPoolForRatingPairing = 5

	// DefaultPoolLimit caps the candidate pool read per pairing.
	DefaultPoolLimit = 500

	// maxRecordAttempts bounds retries of a conflicting rating transaction.
	maxRecordAttempts = 3
)

// Pair is two distinct photos to compare, in presentation order.
type Pair struct {
	A *photo.Photo `json:"a,omitempty"`
	B *photo.Photo `json:"b,omitempty"`
}

// Outcome is one recorded comparison. Outcomes are append-only.
type Outcome struct {
	ID        string    `json:"id"`
	WinnerID  string    `json:"winner_id"`
	LoserID   string    `json:"loser_id"`
	VoterID   *string   `json:"voter_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Result is a committed outcome with the ratings it produced.
type Result struct {
	Outcome      Outcome `json:"outcome"`
	WinnerRating int     `json:"winner_rating"`
	LoserRating  int     `json:"loser_rating"`
}
