package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"core/models"
)

// DefaultGameCount is how many games GetRecentGames returns when asked for
// the default.
const DefaultGameCount = 10

// LadderService answers read-only questions about the ladder.
type LadderService struct {
	deps Deps
}

func NewLadderService(deps Deps) *LadderService {
	return &LadderService{
		deps: deps.withDefaults(),
	}
}

// GetLeaderboard returns every player, ranked. A cached leaderboard is served
// when available.
func (s *LadderService) GetLeaderboard(ctx context.Context) ([]models.LadderEntry, error) {
	entries, ok, err := s.deps.Cache.Get(ctx)
	if err != nil {
		s.deps.Logger.WarnContext(ctx, "leaderboard cache read failed", slog.Any("error", err))
	} else if ok {
		return entries, nil
	}

	return s.RefreshLeaderboard(ctx)
}

// RefreshLeaderboard recomputes the leaderboard from storage and stores it in
// the cache, unless a write invalidated the cache while it was being read.
func (s *LadderService) RefreshLeaderboard(ctx context.Context) ([]models.LadderEntry, error) {
	version, cacheErr := s.deps.Cache.Version(ctx)
	if cacheErr != nil {
		s.deps.Logger.WarnContext(ctx, "leaderboard cache version read failed", slog.Any("error", cacheErr))
	}

	standings, err := s.standings(ctx)
	if err != nil {
		return nil, err
	}

	entries := RankPlayers(standings)

	if cacheErr != nil {
		return entries, nil
	}
	stored, err := s.deps.Cache.Set(ctx, version, entries)
	switch {
	case err != nil:
		s.deps.Logger.WarnContext(ctx, "leaderboard cache write failed", slog.Any("error", err))
	case !stored:
		s.deps.Logger.DebugContext(ctx, "leaderboard changed while refreshing, not cached")
	}
	return entries, nil
}

func (s *LadderService) standings(ctx context.Context) ([]models.PlayerStanding, error) {
	players, err := s.deps.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.deps.Store.CountGamesByPlayer(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]models.PlayerStanding, len(players))
	for i, p := range players {
		standings[i] = models.PlayerStanding{
			Player: p,
			Counts: counts[p.ID],
		}
	}
	return standings, nil
}

// RankPlayers orders standings by rating (highest first), then games played
// (most first), then join time (earliest first), then name, and numbers them
// from 1. The input is not modified.
func RankPlayers(standings []models.PlayerStanding) []models.LadderEntry {
	sorted := slices.Clone(standings)
	slices.SortFunc(sorted, compareStandings)

	entries := make([]models.LadderEntry, len(sorted))
	for i, st := range sorted {
		entries[i] = models.LadderEntry{
			Rank:           i + 1,
			PlayerStanding: st,
		}
	}
	return entries
}

func compareStandings(a, b models.PlayerStanding) int {
	if c := cmp.Compare(b.Player.Rating, a.Player.Rating); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Counts.Played(), a.Counts.Played()); c != 0 {
		return c
	}
	if c := a.Player.TimeCreated.Compare(b.Player.TimeCreated); c != 0 {
		return c
	}
	return strings.Compare(a.Player.Name, b.Player.Name)
}

// GetPlayer returns one player's ladder entry.
func (s *LadderService) GetPlayer(ctx context.Context, name string) (*models.LadderEntry, error) {
	entries, err := s.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Player.Name == name {
			return &entries[i], nil
		}
	}
	return nil, models.ErrPlayerNotFound
}

// GetRecentGames returns up to count games, newest first. A non-empty
// playerName keeps only games that player took part in.
func (s *LadderService) GetRecentGames(ctx context.Context, count int, playerName string) ([]models.Game, error) {
	verr := &ValidationError{}
	if count < 1 {
		verr.Add("count", models.ErrOutOfRangeValue, MsgCountTooLow)
	}

	player, err := s.filterPlayer(ctx, verr, playerName)
	if err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	return s.deps.Store.ListGames(ctx, count, player)
}

// GetChallenges returns open challenges, newest first, and completed ones too
// when includeCompleted is set. A non-empty playerName keeps only challenges
// that player issued or received.
func (s *LadderService) GetChallenges(ctx context.Context, includeCompleted bool, playerName string) ([]models.Challenge, error) {
	verr := &ValidationError{}

	player, err := s.filterPlayer(ctx, verr, playerName)
	if err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	return s.deps.Store.ListChallenges(ctx, includeCompleted, player)
}

func (s *LadderService) filterPlayer(ctx context.Context, verr *ValidationError, name string) (*models.Player, error) {
	if name == "" {
		return nil, nil
	}
	return resolvePlayer(ctx, s.deps.Store, verr, "player", name)
}
