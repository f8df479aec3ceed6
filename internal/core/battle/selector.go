// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/taibuivan/snapduel/internal/core/photo"
)

// Random is the randomness SelectPair needs. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRandom uses the package-level math/rand/v2 source, which is safe for
// concurrent use.
type globalRandom struct{}

func (globalRandom) IntN(n int) int                     { return rand.IntN(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

/*
SelectPair picks two distinct photos from pool.

Description:
  - len(pool) < 2: [ErrEmpty].
  - len(pool) < [MinPoolForRatingPairing]: uniform random pair.
  - otherwise: sort by rating (ties by id), pick a uniform index i in
    [0, n-2] and pair sorted[i] with sorted[i+1].

The returned order is randomised so neither side is systematically first.
pool is not modified.
*/
func SelectPair(pool []*photo.Photo, random Random) (Pair, error) {
	n := len(pool)
	if n < 2 {
		return Pair{}, ErrEmpty
	}

	candidates := slices.Clone(pool)

	var first, second *photo.Photo
	if n < MinPoolForRatingPairing {
		random.Shuffle(n, func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		first, second = candidates[0], candidates[1]
	} else {
		slices.SortStableFunc(candidates, func(a, b *photo.Photo) int {
			if a.Rating != b.Rating {
				return a.Rating - b.Rating
			}
			return strings.Compare(a.ID, b.ID)
		})
		index := random.IntN(n - 1)
		first, second = candidates[index], candidates[index+1]
	}

	if random.IntN(2) == 1 {
		first, second = second, first
	}

	return Pair{A: first, B: second}, nil
}
