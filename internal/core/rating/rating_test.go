// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/snapduel/internal/core/rating"
)

/*
TestApply_EqualRatings checks the reference battle: 1500 beats 1500.
*/
func TestApply_EqualRatings(t *testing.T) {
	winner, loser := rating.Apply(1500, 1500)

	assert.Equal(t, 1516, winner)
	assert.Equal(t, 1484, loser)
}

/*
TestApply_WinnerAlwaysAheadFromEqualStart holds for any shared starting rating.
*/
func TestApply_WinnerAlwaysAheadFromEqualStart(t *testing.T) {
	for _, start := range []int{-800, 0, 900, 1500, 2400, 5000} {
		winner, loser := rating.Apply(start, start)
		assert.Greater(t, winner, loser, "start=%d", start)
		assert.Greater(t, winner, start, "start=%d", start)
		assert.Less(t, loser, start, "start=%d", start)
	}
}

/*
TestExpected_Complement verifies E(a,b) + E(b,a) == 1.
*/
func TestExpected_Complement(t *testing.T) {
	pairs := [][2]int{{1500, 1500}, {1500, 1900}, {2100, 1200}, {-300, 300}, {0, 4000}}

	for _, pair := range pairs {
		sum := rating.Expected(pair[0], pair[1]) + rating.Expected(pair[1], pair[0])
		assert.InDelta(t, 1.0, sum, 1e-12, "pair=%v", pair)
	}
}

/*
TestExpected_Monotonic favours the higher rated side.
*/
func TestExpected_Monotonic(t *testing.T) {
	assert.InDelta(t, 0.5, rating.Expected(1500, 1500), 1e-12)
	assert.Greater(t, rating.Expected(1700, 1500), 0.5)
	assert.Less(t, rating.Expected(1500, 1700), 0.5)
	// 400 points of difference means 10:1 odds.
	assert.InDelta(t, 10.0/11.0, rating.Expected(1900, 1500), 1e-12)
}

/*
TestApply_UpsetAsymmetry: a loss costs the favourite more than the underdog.
*/
func TestApply_UpsetAsymmetry(t *testing.T) {
	pairs := [][2]int{{1600, 1500}, {1900, 1500}, {2000, 1000}, {1501, 1500}}

	for _, pair := range pairs {
		high, low := pair[0], pair[1]

		// Upset: the higher rated photo loses.
		_, highAfterLoss := rating.Apply(low, high)
		// Expected result: the lower rated photo loses.
		_, lowAfterLoss := rating.Apply(high, low)

		highDrop := high - highAfterLoss
		lowDrop := low - lowAfterLoss
		assert.GreaterOrEqual(t, highDrop, lowDrop, "pair=%v", pair)
	}

	// With a clear gap the inequality is strict.
	_, highAfterLoss := rating.Apply(1500, 1900)
	_, lowAfterLoss := rating.Apply(1900, 1500)
	assert.Greater(t, 1900-highAfterLoss, 1500-lowAfterLoss)
}

/*
TestUpdated_Rounding uses half-away-from-zero rounding.
*/
func TestUpdated_Rounding(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		expected float64
		actual   rating.Score
		want     int
	}{
		{"half_on_win", 1500, 0.484375, rating.Win, 1517},   // 1516.5
		{"half_on_loss", 1500, 0.515625, rating.Loss, 1484}, // 1483.5
		{"no_change_when_certain", 1500, 1.0, rating.Win, 1500},
		{"full_swing", 1500, 0.0, rating.Win, 1532},
		{"negative_domain", -10, 0.5, rating.Loss, -26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rating.Updated(tt.current, tt.expected, tt.actual))
		})
	}
}

/*
TestApply_BoundedChange never moves a rating by more than K.
*/
func TestApply_BoundedChange(t *testing.T) {
	for _, pair := range [][2]int{{0, 3000}, {3000, 0}, {1500, 1500}} {
		winner, loser := rating.Apply(pair[0], pair[1])
		assert.LessOrEqual(t, winner-pair[0], rating.K)
		assert.LessOrEqual(t, pair[1]-loser, rating.K)
		assert.GreaterOrEqual(t, winner, pair[0])
		assert.LessOrEqual(t, loser, pair[1])
	}
}
