package store

import (
	"core/models"

	"gorm.io/gorm"
)

// openChallengePairIndex allows one open challenge per unordered player pair.
// Partial indexes are supported by both PostgreSQL and SQLite.
const openChallengePairIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_challenges_open_pair
	ON challenges (player_low_id, player_high_id)
	WHERE game_id IS NULL
`

// challengeGameIndex lets a game settle at most one challenge.
const challengeGameIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_challenges_game
	ON challenges (game_id)
	WHERE game_id IS NOT NULL
`

// CreateSchema creates the ladder tables and indexes. It is safe to run on an
// up-to-date database.
func CreateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Player{}, &models.Game{}, &models.Challenge{}); err != nil {
		return err
	}
	if err := db.Exec(openChallengePairIndex).Error; err != nil {
		return err
	}
	return CreateChallengeGameIndex(db)
}

// CreateChallengeGameIndex adds the one-challenge-per-game index.
func CreateChallengeGameIndex(db *gorm.DB) error {
	return db.Exec(challengeGameIndex).Error
}

// DropSchema drops the ladder tables in reverse dependency order.
func DropSchema(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Challenge{}, &models.Game{}, &models.Player{})
}
