package utils

import "math"

// K-factors. Games to 21 are rarer and count for more.
const (
	ShortGameK = 10.0
	LongGameK  = 15.0
)

// ExpectedScore returns the probability that a player rated rating beats a
// player rated opponentRating.
func ExpectedScore(rating, opponentRating int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponentRating-rating)/400))
}

// UpdateRatings computes the ratings after winner beat loser.
// The loser gives up exactly the points the winner gains, so the sum of the
// two ratings never changes.
func UpdateRatings(winnerRating, loserRating int, isShortGame bool) (int, int) {
	k := LongGameK
	if isShortGame {
		k = ShortGameK
	}

	// Chance the loser would have won
	loserExpected := ExpectedScore(loserRating, winnerRating)

	newWinnerRating := int(math.Floor(float64(winnerRating) + k*loserExpected))
	newLoserRating := loserRating - (newWinnerRating - winnerRating)

	return newWinnerRating, newLoserRating
}
