package x01

import mapset "github.com/deckarep/golang-set/v2"

// Scores no combination of three darts can produce.
var impossibleTurnScores = mapset.NewSet(163, 166, 169, 172, 173, 175, 176, 178, 179)

// Leftovers inside checkout range that no three darts can take out. Leaving
// one of these while already in checkout range is a bust.
var impossibleFinishes = mapset.NewSet(169, 168, 166, 165, 163, 162, 159)

// Scores in the two-dart band that still need three darts.
var impossibleTwoDartFinishes = mapset.NewSet(99, 103, 105, 107, 109)

// ValidTurnScore reports whether a typed total is reachable with three darts.
func ValidTurnScore(score int) bool {
	if score < 0 || score > 180 {
		return false
	}
	return !impossibleTurnScores.Contains(score)
}

// MinDartsToFinish returns the minimum number of darts that can take out the
// given remaining score on a double.
func MinDartsToFinish(score int) int {
	if score <= 0 {
		return 0
	}
	// Doubles 2-40 and the bull go in one.
	if score == 50 || (score >= 2 && score <= 40 && score%2 == 0) {
		return 1
	}
	if score >= 3 && score <= 40 && score%2 != 0 {
		return 2
	}
	if score >= 41 && score <= 110 {
		if impossibleTwoDartFinishes.Contains(score) {
			return 3
		}
		return 2
	}
	// 111-170 and everything above needs all three.
	return 3
}

// unfinishableLeftover reports whether a turn left the player on a score no
// checkout can reach. Matches the live-play rule: only applies when the
// player started the turn inside checkout range.
func unfinishableLeftover(left, preTurn int) bool {
	if left == 1 {
		return true
	}
	return left > 1 && left <= 170 && preTurn <= 170 && impossibleFinishes.Contains(left)
}
