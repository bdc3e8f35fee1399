package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"core/models"
	"core/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Epoch is the reference time used by fixed clocks in tests.
var Epoch = time.Date(2015, 12, 6, 0, 27, 30, 0, time.UTC)

// NewDB opens a file-backed SQLite database in a temporary directory with the
// ladder schema applied. The database is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "ladder.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, store.CreateSchema(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// SeedPlayer inserts a player directly, bypassing the services.
func SeedPlayer(t testing.TB, db *gorm.DB, name string, rating int, timeCreated time.Time) *models.Player {
	t.Helper()

	player := &models.Player{Name: name, Rating: rating, TimeCreated: timeCreated.UTC()}
	require.NoError(t, db.Create(player).Error)
	return player
}

// SeedGame inserts a game directly without touching ratings.
func SeedGame(t testing.TB, db *gorm.DB, winner, loser *models.Player, winnerScore, loserScore int, timeCreated time.Time) *models.Game {
	t.Helper()

	game := &models.Game{
		WinnerID:    winner.ID,
		LoserID:     loser.ID,
		WinnerScore: winnerScore,
		LoserScore:  loserScore,
		TimeCreated: timeCreated.UTC(),
	}
	require.NoError(t, db.Omit("Winner", "Loser").Create(game).Error)
	game.Winner = *winner
	game.Loser = *loser
	return game
}
