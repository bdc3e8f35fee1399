package services

import (
	"strings"
	"testing"
	"time"

	"core/events"
	"core/models"
	"core/testutil"

	"github.com/stretchr/testify/suite"
)

type PlayerServiceSuite struct {
	serviceSuite
}

func TestPlayerServiceSuite(t *testing.T) {
	suite.Run(t, new(PlayerServiceSuite))
}

func (s *PlayerServiceSuite) TestCreatePlayerDefaults() {
	s.clock.CurrentTime = testutil.Epoch.Add(250 * time.Millisecond)

	player, err := s.players.CreatePlayer(s.ctx, CreatePlayerInput{Name: "kumanan"})
	s.Require().NoError(err)
	s.Equal("kumanan", player.Name)
	s.Equal(1200, player.Rating)
	s.True(testutil.Epoch.Equal(player.TimeCreated))

	s.Equal([]string{events.PlayerRegistered}, s.recorder.Types())
}

func (s *PlayerServiceSuite) TestCreatePlayerExplicitValues() {
	created := time.Date(2015, 12, 1, 10, 0, 0, 0, time.UTC)

	player, err := s.players.CreatePlayer(s.ctx, CreatePlayerInput{
		Name:        "colin",
		Rating:      intPtr(1100),
		TimeCreated: &created,
	})
	s.Require().NoError(err)

	stored, err := s.store.GetPlayerByName(s.ctx, "colin")
	s.Require().NoError(err)
	s.Equal(player.ID, stored.ID)
	s.Equal(1100, stored.Rating)
	s.True(created.Equal(stored.TimeCreated))
}

func (s *PlayerServiceSuite) TestCreatePlayerDuplicateName() {
	s.addPlayer("kumanan", 1200)

	_, err := s.players.CreatePlayer(s.ctx, CreatePlayerInput{Name: "kumanan"})
	s.ErrorIs(err, models.ErrDuplicateName)
	s.Equal(map[string][]string{
		"name": {`Player "kumanan" already exists`},
	}, s.requireValidation(err))

	total, err := s.store.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, total)
}

func (s *PlayerServiceSuite) TestCreatePlayerRejectsLowRating() {
	_, err := s.players.CreatePlayer(s.ctx, CreatePlayerInput{Name: "colin", Rating: intPtr(0)})
	s.ErrorIs(err, models.ErrOutOfRangeValue)
	s.Equal(map[string][]string{"rating": {MsgRatingTooLow}}, s.requireValidation(err))
}

func (s *PlayerServiceSuite) TestCreatePlayerAggregatesFailures() {
	_, err := s.players.CreatePlayer(s.ctx, CreatePlayerInput{Name: "", Rating: intPtr(-5)})

	messages := s.requireValidation(err)
	s.Equal([]string{MsgMissingRequired}, messages["name"])
	s.Equal([]string{MsgRatingTooLow}, messages["rating"])
	s.ErrorIs(err, models.ErrMissingRequiredField)
	s.ErrorIs(err, models.ErrOutOfRangeValue)
	s.Empty(s.recorder.Events())
}

func (s *PlayerServiceSuite) TestCreatePlayerNameTooLong() {
	_, err := s.players.CreatePlayer(s.ctx, CreatePlayerInput{Name: strings.Repeat("x", MaxNameLength+1)})
	s.ErrorIs(err, models.ErrOutOfRangeValue)

	_, err = s.players.CreatePlayer(s.ctx, CreatePlayerInput{Name: strings.Repeat("x", MaxNameLength)})
	s.NoError(err)
}

func (s *PlayerServiceSuite) TestCreatePlayerInvalidatesLeaderboard() {
	s.addPlayer("kumanan", 1300)

	_, err := s.ladder.GetLeaderboard(s.ctx)
	s.Require().NoError(err)

	s.addPlayer("colin", 1100)

	board, err := s.ladder.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Len(board, 2)
}
