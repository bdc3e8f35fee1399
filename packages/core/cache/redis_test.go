package cache

import (
	"context"
	"testing"
	"time"

	"core/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	cache *Redis
	ctx   context.Context
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, new(RedisSuite))
}

func (s *RedisSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.LeaderboardTTL = time.Minute

	s.cache = NewRedisWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *RedisSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

func sampleEntries() []models.LadderEntry {
	created := time.Date(2015, 12, 6, 0, 27, 30, 0, time.UTC)
	return []models.LadderEntry{
		{
			Rank: 1,
			PlayerStanding: models.PlayerStanding{
				Player: models.Player{ID: 2, Name: "kumanan", Rating: 1303, TimeCreated: created},
				Counts: models.GameCounts{Wins: 1},
			},
		},
		{
			Rank: 2,
			PlayerStanding: models.PlayerStanding{
				Player: models.Player{ID: 1, Name: "colin", Rating: 1097, TimeCreated: created},
				Counts: models.GameCounts{Losses: 1},
			},
		},
	}
}

func (s *RedisSuite) TestMissWhenEmpty() {
	entries, ok, err := s.cache.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
	s.Nil(entries)
}

// set stores entries under the current version.
func (s *RedisSuite) set(entries []models.LadderEntry) {
	version, err := s.cache.Version(s.ctx)
	s.Require().NoError(err)
	stored, err := s.cache.Set(s.ctx, version, entries)
	s.Require().NoError(err)
	s.Require().True(stored)
}

func (s *RedisSuite) TestSetAndGet() {
	s.set(sampleEntries())

	entries, ok, err := s.cache.Get(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(sampleEntries(), entries)
}

func (s *RedisSuite) TestEmptyLeaderboardIsCached() {
	s.set([]models.LadderEntry{})

	entries, ok, err := s.cache.Get(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Empty(entries)
}

func (s *RedisSuite) TestInvalidate() {
	s.set(sampleEntries())
	s.Require().NoError(s.cache.Invalidate(s.ctx))

	_, ok, err := s.cache.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisSuite) TestInvalidateAdvancesVersion() {
	before, err := s.cache.Version(s.ctx)
	s.Require().NoError(err)
	s.Equal(Version(0), before)

	s.Require().NoError(s.cache.Invalidate(s.ctx))
	s.Require().NoError(s.cache.Invalidate(s.ctx))

	after, err := s.cache.Version(s.ctx)
	s.Require().NoError(err)
	s.Equal(Version(2), after)
}

func (s *RedisSuite) TestSetAfterInvalidateIsDropped() {
	version, err := s.cache.Version(s.ctx)
	s.Require().NoError(err)

	// a write lands between reading storage and caching the result
	s.Require().NoError(s.cache.Invalidate(s.ctx))

	stored, err := s.cache.Set(s.ctx, version, sampleEntries())
	s.Require().NoError(err)
	s.False(stored)
	s.False(s.mini.Exists(leaderboardKey()))

	_, ok, err := s.cache.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	s.set(sampleEntries())
	_, ok, err = s.cache.Get(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *RedisSuite) TestExpires() {
	s.set(sampleEntries())
	s.True(s.mini.Exists(leaderboardKey()))

	s.mini.FastForward(2 * time.Minute)

	_, ok, err := s.cache.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisSuite) TestNop() {
	var c LeaderboardCache = Nop{}
	version, err := c.Version(s.ctx)
	s.Require().NoError(err)
	stored, err := c.Set(s.ctx, version, sampleEntries())
	s.Require().NoError(err)
	s.False(stored)

	_, ok, err := c.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
	s.NoError(c.Invalidate(s.ctx))
}
