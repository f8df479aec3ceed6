// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package swipe serves single-photo decks and records like/pass judgments.

Judgments never change ratings; they feed the "already judged" exclusion so a
viewer is not shown the same photo twice.
*/
package swipe

import (
	"time"

	"github.com/taibuivan/snapduel/internal/core/photo"
)

// Deck sizing.
const (
	DefaultDeckSize = 10
	MaxDeckSize     = 50

	// PoolMultiplier sizes the candidate pool relative to the deck so
	// exclusions do not starve the result.
	PoolMultiplier = 3

	// RefillThreshold is the remaining-card count at which clients fetch more.
	RefillThreshold = 2

	// MaxExcludeIDs caps the caller-supplied exclusion list.
	MaxExcludeIDs = 200
)

// # Verdicts

// Verdict is the viewer's binary judgment of one photo.
type Verdict string

const (
	VerdictLike Verdict = "like"
	VerdictPass Verdict = "pass"
)

// Valid reports whether v is like or pass.
func (v Verdict) Valid() bool {
	return v == VerdictLike || v == VerdictPass
}

// Judgment is one recorded swipe. Judgments are append-only.
type Judgment struct {
	ID        string    `json:"id"`
	ViewerID  string    `json:"viewer_id"`
	PhotoID   string    `json:"photo_id"`
	Verdict   Verdict   `json:"verdict"`
	CreatedAt time.Time `json:"created_at"`
}

// # Deck

// Deck is one batch of cards for sequential judging.
type Deck struct {
	Cards           []photo.Card `json:"cards"`
	State           DeckState    `json:"state"`
	Empty           bool         `json:"empty"`
	RefillThreshold int          `json:"refill_threshold"`
	RefillNow       bool         `json:"refill_now"`
}

// newDeck wraps cards with the state a client starts from after loading.
func newDeck(cards []photo.Card) Deck {
	state, _ := StateLoading.Transition(EventLoaded, len(cards))
	return Deck{
		Cards:           cards,
		State:           state,
		Empty:           len(cards) == 0,
		RefillThreshold: RefillThreshold,
		RefillNow:       state == StateReady && NeedsRefill(len(cards)),
	}
}
