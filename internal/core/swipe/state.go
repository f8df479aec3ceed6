// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package swipe

import (
	"errors"
	"fmt"
)

// DeckState is where a client is in consuming a deck.
//
//	loading → ready → judging → ready … → empty
//	empty → loading (refill) → ready | empty
type DeckState string

const (
	StateLoading DeckState = "loading"
	StateReady   DeckState = "ready"
	StateJudging DeckState = "judging"
	StateEmpty   DeckState = "empty"
)

// DeckEvent drives a [DeckState] transition.
type DeckEvent string

const (
	// EventLoaded: a fetch finished; remaining is the number of cards received.
	EventLoaded DeckEvent = "loaded"
	// EventJudge: the viewer started judging the top card.
	EventJudge DeckEvent = "judge"
	// EventJudged: the judgment was recorded; remaining counts cards left.
	EventJudged DeckEvent = "judged"
	// EventRefill: a new fetch was started.
	EventRefill DeckEvent = "refill"
)

// ErrInvalidTransition is returned for events not allowed in the current state.
var ErrInvalidTransition = errors.New("swipe: invalid deck transition")

// Transition returns the state after event, given remaining cards afterwards.
func (state DeckState) Transition(event DeckEvent, remaining int) (DeckState, error) {
	switch {
	case state == StateLoading && event == EventLoaded:
		return readyOrEmpty(remaining), nil

	case state == StateReady && event == EventJudge && remaining > 0:
		return StateJudging, nil

	case state == StateJudging && event == EventJudged:
		return readyOrEmpty(remaining), nil

	// A background refill keeps the remaining cards usable.
	case state == StateReady && event == EventRefill:
		return StateReady, nil

	case state == StateEmpty && event == EventRefill:
		return StateLoading, nil
	}

	return state, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, state)
}

// NeedsRefill reports whether a client holding remaining cards should fetch more.
func NeedsRefill(remaining int) bool {
	return remaining <= RefillThreshold
}

func readyOrEmpty(remaining int) DeckState {
	if remaining > 0 {
		return StateReady
	}
	return StateEmpty
}
