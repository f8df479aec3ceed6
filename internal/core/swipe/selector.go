// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package swipe

import (
	"math/rand/v2"

	"github.com/taibuivan/snapduel/internal/core/access"
	"github.com/taibuivan/snapduel/internal/core/photo"
)

// Shuffler randomises slice order. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

/*
SelectDeck drops excluded photos from pool, shuffles the rest and keeps at
most size of them.

Description: Fewer than size photos is fine; none at all is a valid empty
deck. pool is not modified.
*/
func SelectDeck(pool []*photo.Photo, exclude access.IDSet, size int, shuffler Shuffler) []*photo.Photo {
	deck := make([]*photo.Photo, 0, len(pool))
	seen := make(access.IDSet, len(pool))

	for _, candidate := range pool {
		if exclude.Has(candidate.ID) || seen.Has(candidate.ID) {
			continue
		}
		seen.Add(candidate.ID)
		deck = append(deck, candidate)
	}

	shuffler.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	if len(deck) > size {
		deck = deck[:size]
	}

	return deck
}
