package services

import (
	"errors"
	"testing"
	"time"

	"core/events"
	"core/models"
	"core/testutil"

	"github.com/stretchr/testify/suite"
)

type GameServiceSuite struct {
	serviceSuite
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceSuite))
}

func (s *GameServiceSuite) TestRegisterGameUpdatesRatings() {
	s.addPlayer("kumanan", 1300)
	s.addPlayer("colin", 1100)

	id := s.registerGame("kumanan", "colin", 21, 19)

	game, err := s.store.GetGame(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("kumanan", game.Winner.Name)
	s.Equal("colin", game.Loser.Name)
	s.Equal(21, game.WinnerScore)
	s.Equal(19, game.LoserScore)

	s.Equal(1303, s.rating("kumanan"))
	s.Equal(1097, s.rating("colin"))
}

func (s *GameServiceSuite) TestRegisterShortGameUsesSmallerK() {
	s.addPlayer("a", 1200)
	s.addPlayer("b", 1200)

	s.registerGame("a", "b", 11, 9)

	s.Equal(1205, s.rating("a"))
	s.Equal(1195, s.rating("b"))
}

func (s *GameServiceSuite) TestRatingsChainAcrossGames() {
	s.addPlayer("a", 1200)
	s.addPlayer("b", 1200)

	s.registerGame("a", "b", 21, 0)
	s.registerGame("a", "b", 21, 0)

	// second game starts from 1207/1193
	s.Equal(1214, s.rating("a"))
	s.Equal(1186, s.rating("b"))
	s.Equal(2400, s.rating("a")+s.rating("b"))
}

func (s *GameServiceSuite) TestRegisterGameTimeCreated() {
	s.addPlayer("a", 1200)
	s.addPlayer("b", 1200)

	s.clock.CurrentTime = testutil.Epoch.Add(time.Hour + 900*time.Millisecond)
	id := s.registerGame("a", "b", 21, 5)
	game, err := s.store.GetGame(s.ctx, id)
	s.Require().NoError(err)
	s.True(testutil.Epoch.Add(time.Hour).Equal(game.TimeCreated))

	explicit := time.Date(2015, 12, 7, 8, 9, 10, 0, time.UTC)
	id, err = s.games.RegisterGame(s.ctx, RegisterGameInput{
		Winner: "b", Loser: "a", WinnerScore: 11, LoserScore: 2, TimeCreated: &explicit,
	})
	s.Require().NoError(err)
	game, err = s.store.GetGame(s.ctx, id)
	s.Require().NoError(err)
	s.True(explicit.Equal(game.TimeCreated))
}

func (s *GameServiceSuite) TestRegisterGameInvalidScores() {
	s.addPlayer("a", 1200)
	s.addPlayer("b", 1200)

	for _, score := range [][2]int{{21, 21}, {15, 3}, {22, 20}, {11, 11}, {21, -1}} {
		_, err := s.games.RegisterGame(s.ctx, RegisterGameInput{
			Winner: "a", Loser: "b", WinnerScore: score[0], LoserScore: score[1],
		})
		s.ErrorIs(err, models.ErrInvalidScore, "score %v", score)
		s.Equal(map[string][]string{SchemaField: {MsgInvalidScore}}, s.requireValidation(err))
	}

	games, err := s.store.ListGames(s.ctx, 0, nil)
	s.Require().NoError(err)
	s.Empty(games)
	s.Equal(1200, s.rating("a"))
}

func (s *GameServiceSuite) TestRegisterGameDuplicatePlayers() {
	s.addPlayer("colin", 1200)

	_, err := s.games.RegisterGame(s.ctx, RegisterGameInput{
		Winner: "colin", Loser: "colin", WinnerScore: 21, LoserScore: 3,
	})
	s.ErrorIs(err, models.ErrDuplicatePlayers)
	s.Equal(map[string][]string{
		SchemaField: {`Two players must be unique, but both are "colin"`},
	}, s.requireValidation(err))
}

func (s *GameServiceSuite) TestRegisterGameAggregatesFailures() {
	_, err := s.games.RegisterGame(s.ctx, RegisterGameInput{
		Winner: "ghost", Loser: "", WinnerScore: 15, LoserScore: 3,
	})

	messages := s.requireValidation(err)
	s.Equal([]string{`Player "ghost" does not exist`}, messages["winner"])
	s.Equal([]string{MsgMissingRequired}, messages["loser"])
	s.Equal([]string{MsgInvalidScore}, messages[SchemaField])

	s.ErrorIs(err, models.ErrUnknownPlayer)
	s.ErrorIs(err, models.ErrMissingRequiredField)
	s.ErrorIs(err, models.ErrInvalidScore)
	s.Empty(s.recorder.Events())
}

func (s *GameServiceSuite) TestRegisterGameResolvesChallengeEitherDirection() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)
	s.addPlayer("robert", 1200)

	first := s.issueChallenge("colin", "kumanan")
	second := s.issueChallenge("robert", "colin")

	gameID := s.registerGame("kumanan", "colin", 21, 10)

	all, err := s.store.ListChallenges(s.ctx, true, nil)
	s.Require().NoError(err)
	byID := map[uint]models.Challenge{}
	for _, c := range all {
		byID[c.ID] = c
	}
	s.Require().NotNil(byID[first].GameID)
	s.Equal(gameID, *byID[first].GameID)
	s.Nil(byID[second].GameID)

	types := s.recorder.Types()
	s.Equal(events.GameRegistered, types[len(types)-2])
	s.Equal(events.ChallengeResolved, types[len(types)-1])

	resolved := s.recorder.Events()[len(types)-1].Data.(events.ChallengeData)
	s.Equal("colin", resolved.Challenger)
	s.Equal("kumanan", resolved.Challenged)
}

func (s *GameServiceSuite) TestChallengeResolvedOnlyOnce() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)

	challengeID := s.issueChallenge("colin", "kumanan")
	firstGame := s.registerGame("colin", "kumanan", 21, 10)
	s.registerGame("kumanan", "colin", 21, 10)

	all, err := s.store.ListChallenges(s.ctx, true, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(challengeID, all[0].ID)
	s.Equal(firstGame, *all[0].GameID)

	resolutions := 0
	for _, t := range s.recorder.Types() {
		if t == events.ChallengeResolved {
			resolutions++
		}
	}
	s.Equal(1, resolutions)
}

func (s *GameServiceSuite) TestRegisterGameWithoutChallenge() {
	s.addPlayer("a", 1200)
	s.addPlayer("b", 1200)

	s.registerGame("a", "b", 21, 10)

	s.Equal(events.GameRegistered, s.recorder.Types()[len(s.recorder.Types())-1])
	open, err := s.store.CountOpenChallenges(s.ctx)
	s.Require().NoError(err)
	s.Zero(open)
}

func (s *GameServiceSuite) TestPublishFailureDoesNotFailRequest() {
	s.addPlayer("a", 1200)
	s.addPlayer("b", 1200)
	s.recorder.Err = errors.New("broker down")

	id, err := s.games.RegisterGame(s.ctx, RegisterGameInput{Winner: "a", Loser: "b", WinnerScore: 21, LoserScore: 1})
	s.Require().NoError(err)
	s.NotZero(id)
}

func (s *GameServiceSuite) TestRegisterGameInvalidatesLeaderboard() {
	s.addPlayer("a", 1200)
	s.addPlayer("b", 1210)

	board, err := s.ladder.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Equal("b", board[0].Player.Name)

	s.registerGame("a", "b", 21, 10)

	board, err = s.ladder.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Equal("a", board[0].Player.Name)
	s.Equal(1, board[0].Counts.Wins)
}
