package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"core/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store owns the players, games and challenges tables. A Store returned by
// Transaction is bound to that transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{
		db: db,
	}
}

// Transaction runs fn inside a database transaction. Any error returned by fn
// rolls back every write fn made.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Players

func (s *Store) CreatePlayer(ctx context.Context, name string, rating int, timeCreated time.Time) (*models.Player, error) {
	player := &models.Player{
		Name:        name,
		Rating:      rating,
		TimeCreated: timeCreated,
	}

	if err := s.db.WithContext(ctx).Create(player).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateName
		}
		return nil, err
	}

	return player, nil
}

func (s *Store) GetPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	var player models.Player

	result := s.db.WithContext(ctx).Where("name = ?", name).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

// LockPlayers reads the given players with a row lock held until the
// enclosing transaction ends. Rows are locked in id order so two transactions
// locking the same pair cannot deadlock. SQLite ignores the lock clause.
func (s *Store) LockPlayers(ctx context.Context, ids ...uint) (map[uint]*models.Player, error) {
	var players []models.Player

	result := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	byID := make(map[uint]*models.Player, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, models.ErrPlayerNotFound
		}
	}

	return byID, nil
}

// ListPlayers returns every player in no particular order.
func (s *Store) ListPlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player

	if err := s.db.WithContext(ctx).Find(&players).Error; err != nil {
		return nil, err
	}

	return players, nil
}

func (s *Store) CountPlayers(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Player{}).Count(&total).Error
	return total, err
}

type playerCount struct {
	PlayerID uint
	Total    int
}

// CountGamesByPlayer aggregates wins and losses per player id. Players
// without games are absent from the map.
func (s *Store) CountGamesByPlayer(ctx context.Context) (map[uint]models.GameCounts, error) {
	var wins, losses []playerCount

	if err := s.db.WithContext(ctx).Model(&models.Game{}).
		Select("winner_id AS player_id, COUNT(*) AS total").
		Group("winner_id").
		Scan(&wins).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Game{}).
		Select("loser_id AS player_id, COUNT(*) AS total").
		Group("loser_id").
		Scan(&losses).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]models.GameCounts)
	for _, row := range wins {
		c := counts[row.PlayerID]
		c.Wins = row.Total
		counts[row.PlayerID] = c
	}
	for _, row := range losses {
		c := counts[row.PlayerID]
		c.Losses = row.Total
		counts[row.PlayerID] = c
	}

	return counts, nil
}

// Games

// CreateGame stores the game and the new ratings already set on winner and
// loser. Both writes commit together or not at all.
func (s *Store) CreateGame(ctx context.Context, winner, loser *models.Player, winnerScore, loserScore int, timeCreated time.Time) (*models.Game, error) {
	game := &models.Game{
		WinnerID:    winner.ID,
		LoserID:     loser.ID,
		WinnerScore: winnerScore,
		LoserScore:  loserScore,
		TimeCreated: timeCreated,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Player{}).Where("id = ?", winner.ID).Update("rating", winner.Rating).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Player{}).Where("id = ?", loser.ID).Update("rating", loser.Rating).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(game).Error
	})
	if err != nil {
		return nil, err
	}

	game.Winner = *winner
	game.Loser = *loser
	return game, nil
}

func (s *Store) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game

	result := s.db.WithContext(ctx).Preload("Winner").Preload("Loser").First(&game, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrGameNotFound
		}
		return nil, result.Error
	}

	return &game, nil
}

// ListGames returns up to limit games, newest first. A nil player returns
// games of every player, otherwise only games the player won or lost.
// A limit of zero or less means no limit.
func (s *Store) ListGames(ctx context.Context, limit int, player *models.Player) ([]models.Game, error) {
	var games []models.Game

	query := s.db.WithContext(ctx).
		Preload("Winner").
		Preload("Loser").
		Order("time_created DESC").
		Order("id DESC")

	if player != nil {
		query = query.Where("winner_id = ? OR loser_id = ?", player.ID, player.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&games).Error; err != nil {
		return nil, err
	}

	return games, nil
}

// CountGames counts games created in [from, to). Zero times leave that side
// of the range open.
func (s *Store) CountGames(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Game{})
	if !from.IsZero() {
		query = query.Where("time_created >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("time_created < ?", to.UTC())
	}

	err := query.Count(&total).Error
	return total, err
}

// Challenges

// CreateChallenge stores a challenge. A nil gameID creates an open challenge;
// creating a second open challenge for the same pair fails with
// models.ErrOpenChallengeExists. A gameID already referenced by another
// challenge fails with models.ErrGameAlreadySettles.
func (s *Store) CreateChallenge(ctx context.Context, challenger, challenged *models.Player, timeCreated time.Time, gameID *uint) (*models.Challenge, error) {
	challenge := &models.Challenge{
		ChallengerID: challenger.ID,
		ChallengedID: challenged.ID,
		TimeCreated:  timeCreated,
		GameID:       gameID,
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(challenge).Error; err != nil {
		if isUniqueViolation(err) {
			// Completed rows are outside the open-pair index, so only the
			// game index can reject them.
			if gameID != nil {
				return nil, models.ErrGameAlreadySettles
			}
			return nil, models.ErrOpenChallengeExists
		}
		return nil, err
	}

	challenge.Challenger = *challenger
	challenge.Challenged = *challenged
	return challenge, nil
}

// FindOpenChallengeBetween returns the open challenge between a and b in
// either direction, or nil when there is none.
func (s *Store) FindOpenChallengeBetween(ctx context.Context, a, b *models.Player) (*models.Challenge, error) {
	var challenge models.Challenge
	low, high := models.OrderedPair(a.ID, b.ID)

	result := s.db.WithContext(ctx).
		Where("player_low_id = ? AND player_high_id = ? AND game_id IS NULL", low, high).
		Limit(1).
		Find(&challenge)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &challenge, nil
}

// ListChallenges returns challenges newest first. Completed challenges are
// skipped unless includeCompleted is set. A non-nil player restricts the list
// to challenges that player issued or received.
func (s *Store) ListChallenges(ctx context.Context, includeCompleted bool, player *models.Player) ([]models.Challenge, error) {
	var challenges []models.Challenge

	query := s.db.WithContext(ctx).
		Preload("Challenger").
		Preload("Challenged").
		Order("time_created DESC").
		Order("id DESC")

	if !includeCompleted {
		query = query.Where("game_id IS NULL")
	}
	if player != nil {
		query = query.Where("challenger_id = ? OR challenged_id = ?", player.ID, player.ID)
	}

	if err := query.Find(&challenges).Error; err != nil {
		return nil, err
	}

	return challenges, nil
}

// ListOpenChallengesBefore returns open challenges created before cutoff,
// oldest first.
func (s *Store) ListOpenChallengesBefore(ctx context.Context, cutoff time.Time) ([]models.Challenge, error) {
	var challenges []models.Challenge

	result := s.db.WithContext(ctx).
		Preload("Challenger").
		Preload("Challenged").
		Where("game_id IS NULL AND time_created < ?", cutoff.UTC()).
		Order("time_created ASC").
		Find(&challenges)
	if result.Error != nil {
		return nil, result.Error
	}

	return challenges, nil
}

func (s *Store) CountOpenChallenges(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Challenge{}).Where("game_id IS NULL").Count(&total).Error
	return total, err
}

// ResolveChallenge points an open challenge at the game that settled it. It
// reports false, and changes nothing, when the challenge was already
// resolved.
func (s *Store) ResolveChallenge(ctx context.Context, challenge *models.Challenge, game *models.Game) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Challenge{}).
		Where("id = ? AND game_id IS NULL", challenge.ID).
		Update("game_id", game.ID)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, models.ErrGameAlreadySettles
		}
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	gameID := game.ID
	challenge.GameID = &gameID
	return true, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	// SQLite drivers that do not translate errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
