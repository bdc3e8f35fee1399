package services

import (
	"context"
	"time"

	"core/models"
)

var zeroTime time.Time

type StatsService struct {
	deps Deps
}

func NewStatsService(deps Deps) *StatsService {
	return &StatsService{
		deps: deps.withDefaults(),
	}
}

func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	totalPlayers, err := s.deps.Store.CountPlayers(ctx)
	if err != nil {
		return nil, err
	}

	totalGames, err := s.deps.Store.CountGames(ctx, zeroTime, zeroTime)
	if err != nil {
		return nil, err
	}

	openChallenges, err := s.deps.Store.CountOpenChallenges(ctx)
	if err != nil {
		return nil, err
	}

	// Calculate date ranges
	now := s.deps.Clock.Now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	gamesLast7Days, err := s.deps.Store.CountGames(ctx, last7DaysStart, zeroTime)
	if err != nil {
		return nil, err
	}

	gamesPrevious7Days, err := s.deps.Store.CountGames(ctx, previous7DaysStart, last7DaysStart)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalPlayers:       totalPlayers,
		TotalGames:         totalGames,
		OpenChallenges:     openChallenges,
		GamesLast7Days:     gamesLast7Days,
		GamesPrevious7Days: gamesPrevious7Days,
	}, nil
}
