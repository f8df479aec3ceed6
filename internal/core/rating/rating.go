// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating implements the Elo-style rating engine for pairwise photo battles.

Every function is pure: no storage, no clock, no randomness. The comparison
recorder reads current ratings, calls [Apply], and writes the result back in
one transaction.

# Domain

Ratings are plain integers. They have no lower or upper bound; with K=32 the
maximum change per comparison is 32 points, so values stay near [Baseline] in
practice, but negative ratings are representable and valid.

# Rounding

[Updated] rounds with [math.Round] (half away from zero).
*/
package rating

import "math"

const (
	// Baseline is the rating assigned to every newly uploaded photo.
	Baseline = 1500

	// K is the maximum rating change for a single comparison.
	K = 32

	// scale is the rating difference at which the stronger side is expected
	// to win ten times as often.
	scale = 400.0
)

// Score is the actual result of a comparison from one side's perspective.
type Score float64

const (
	Loss Score = 0
	Win  Score = 1
)

// Expected returns the probability that a photo rated ra beats one rated rb.
//
//	Expected(ra, rb) = 1 / (1 + 10^((rb - ra) / 400))
//
// Expected(ra, rb) + Expected(rb, ra) == 1 for all inputs.
func Expected(ra, rb int) float64 {
	return 1 / (1 + math.Pow(10, float64(rb-ra)/scale))
}

// Updated returns the new rating after one comparison.
//
//	Updated(r, e, s) = round(r + K * (s - e))
func Updated(current int, expected float64, actual Score) int {
	return int(math.Round(float64(current) + K*(float64(actual)-expected)))
}

// Apply computes both new ratings after the photo rated winner beat the photo
// rated loser.
func Apply(winner, loser int) (newWinner, newLoser int) {
	expectedWinner := Expected(winner, loser)
	expectedLoser := Expected(loser, winner)

	return Updated(winner, expectedWinner, Win), Updated(loser, expectedLoser, Loss)
}
