package utils

import (
	"fmt"

	"core/models"
)

// Winning scores. A game ends when one player reaches one of them.
const (
	ShortGamePoints = 11
	LongGamePoints  = 21
)

// ClassifyScore checks that winnerScore-loserScore is a final score and
// reports whether it was a short (to 11) game. The loser must have scored
// strictly less than the winner; deuce continuation past the cap is not
// accepted.
func ClassifyScore(winnerScore, loserScore int) (bool, error) {
	switch winnerScore {
	case LongGamePoints:
		if loserScore < 0 || loserScore > LongGamePoints-1 {
			return false, invalidScore(winnerScore, loserScore)
		}
		return false, nil
	case ShortGamePoints:
		if loserScore < 0 || loserScore > ShortGamePoints-1 {
			return false, invalidScore(winnerScore, loserScore)
		}
		return true, nil
	default:
		return false, invalidScore(winnerScore, loserScore)
	}
}

func invalidScore(winnerScore, loserScore int) error {
	return fmt.Errorf("%w: %d-%d", models.ErrInvalidScore, winnerScore, loserScore)
}
