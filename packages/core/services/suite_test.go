package services

import (
	"context"
	"time"

	"core/cache"
	"core/events"
	"core/models"
	"core/store"
	"core/testutil"
	"core/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// serviceSuite wires every service against a fresh SQLite database and a
// miniredis-backed leaderboard cache.
type serviceSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	store    *store.Store
	clock    *utils.FixedClock
	recorder *events.Recorder
	mini     *miniredis.Miniredis
	cache    *cache.Redis

	players    *PlayerService
	ladder     *LadderService
	games      *GameService
	challenges *ChallengeService
	stats      *StatsService
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.store = store.New(s.db)
	s.clock = utils.NewFixedClock(testutil.Epoch)
	s.recorder = events.NewRecorder()

	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.cache = cache.NewRedisWithClient(client, cache.DefaultConfig())

	deps := s.deps()
	s.players = NewPlayerService(deps, 1200)
	s.ladder = NewLadderService(deps)
	s.games = NewGameService(deps)
	s.challenges = NewChallengeService(deps)
	s.stats = NewStatsService(deps)
}

func (s *serviceSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

func (s *serviceSuite) deps() Deps {
	return Deps{
		Store:     s.store,
		Clock:     s.clock,
		Publisher: s.recorder,
		Cache:     s.cache,
		Logger:    testutil.NopLogger(),
	}
}

func (s *serviceSuite) addPlayer(name string, rating int) *models.Player {
	player, err := s.players.CreatePlayer(s.ctx, CreatePlayerInput{Name: name, Rating: &rating})
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return player
}

func (s *serviceSuite) rating(name string) int {
	player, err := s.store.GetPlayerByName(s.ctx, name)
	s.Require().NoError(err)
	return player.Rating
}

func (s *serviceSuite) registerGame(winner, loser string, winnerScore, loserScore int) uint {
	id, err := s.games.RegisterGame(s.ctx, RegisterGameInput{
		Winner:      winner,
		Loser:       loser,
		WinnerScore: winnerScore,
		LoserScore:  loserScore,
	})
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return id
}

func (s *serviceSuite) issueChallenge(challenger, challenged string) uint {
	id, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{
		Challenger: challenger,
		Challenged: challenged,
	})
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return id
}

// requireValidation asserts err is a *ValidationError and returns its
// messages by field.
func (s *serviceSuite) requireValidation(err error) map[string][]string {
	s.T().Helper()
	s.Require().Error(err)

	verr, ok := err.(*ValidationError)
	s.Require().True(ok, "expected *ValidationError, got %T: %v", err, err)
	return verr.Messages()
}

func intPtr(v int) *int {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}
