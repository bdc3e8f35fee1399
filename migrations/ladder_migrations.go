package migrations

import (
	"core/store"

	"gorm.io/gorm"
)

// GetLadderMigrations returns the ladder schema history in apply order.
func GetLadderMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2015_12_06_000000_create_ladder_tables",
			Up:   store.CreateSchema,
			Down: store.DropSchema,
		},
		{
			Name: "2015_12_20_000000_add_games_recent_index",
			Up: func(db *gorm.DB) error {
				return db.Exec(`CREATE INDEX IF NOT EXISTS idx_games_recent ON games (time_created DESC, id DESC)`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`DROP INDEX IF EXISTS idx_games_recent`).Error
			},
		},
		{
			Name: "2016_01_10_000000_add_challenges_open_index",
			Up: func(db *gorm.DB) error {
				return db.Exec(`CREATE INDEX IF NOT EXISTS idx_challenges_open_created ON challenges (time_created) WHERE game_id IS NULL`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`DROP INDEX IF EXISTS idx_challenges_open_created`).Error
			},
		},
		{
			Name: "2016_02_01_000000_add_challenges_game_unique_index",
			Up:   store.CreateChallengeGameIndex,
			Down: func(db *gorm.DB) error {
				return db.Exec(`DROP INDEX IF EXISTS ux_challenges_game`).Error
			},
		},
	}
}
