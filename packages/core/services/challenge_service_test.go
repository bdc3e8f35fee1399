package services

import (
	"fmt"
	"testing"
	"time"

	"core/events"
	"core/models"
	"core/testutil"

	"github.com/stretchr/testify/suite"
)

type ChallengeServiceSuite struct {
	serviceSuite
}

func TestChallengeServiceSuite(t *testing.T) {
	suite.Run(t, new(ChallengeServiceSuite))
}

func (s *ChallengeServiceSuite) TestIssueChallenge() {
	s.addPlayer("robert", 1200)
	s.addPlayer("colin", 1200)

	s.clock.CurrentTime = testutil.Epoch.Add(time.Hour)
	id := s.issueChallenge("robert", "colin")

	challenges, err := s.store.ListChallenges(s.ctx, false, nil)
	s.Require().NoError(err)
	s.Require().Len(challenges, 1)
	s.Equal(id, challenges[0].ID)
	s.Equal("robert", challenges[0].Challenger.Name)
	s.Equal("colin", challenges[0].Challenged.Name)
	s.True(challenges[0].IsOpen())
	s.True(testutil.Epoch.Add(time.Hour).Equal(challenges[0].TimeCreated))

	s.Equal(events.ChallengeIssued, s.recorder.Types()[len(s.recorder.Types())-1])
}

func (s *ChallengeServiceSuite) TestOpenChallengeExistsEitherDirection() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)

	s.issueChallenge("colin", "kumanan")

	for _, pair := range [][2]string{{"kumanan", "colin"}, {"colin", "kumanan"}} {
		_, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{Challenger: pair[0], Challenged: pair[1]})
		s.ErrorIs(err, models.ErrOpenChallengeExists)
		s.Equal(map[string][]string{SchemaField: {MsgOpenChallenge}}, s.requireValidation(err))
	}

	open, err := s.store.CountOpenChallenges(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, open)
}

func (s *ChallengeServiceSuite) TestNewChallengeAfterResolution() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)

	s.issueChallenge("colin", "kumanan")
	s.registerGame("kumanan", "colin", 21, 19)
	second := s.issueChallenge("kumanan", "colin")

	open, err := s.store.ListChallenges(s.ctx, false, nil)
	s.Require().NoError(err)
	s.Require().Len(open, 1)
	s.Equal(second, open[0].ID)
}

func (s *ChallengeServiceSuite) TestIssueChallengeValidation() {
	s.addPlayer("colin", 1200)

	_, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{Challenger: "colin", Challenged: "colin"})
	s.ErrorIs(err, models.ErrDuplicatePlayers)

	_, err = s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{Challenger: "robert", Challenged: "colin"})
	s.ErrorIs(err, models.ErrUnknownPlayer)
	s.Equal(map[string][]string{
		"challenger": {`Player "robert" does not exist`},
	}, s.requireValidation(err))

	_, err = s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{Challenger: "colin"})
	s.ErrorIs(err, models.ErrMissingRequiredField)
	s.Equal(map[string][]string{"challenged": {MsgMissingRequired}}, s.requireValidation(err))
}

func (s *ChallengeServiceSuite) TestIssueCompletedChallenge() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)
	gameID := s.registerGame("colin", "kumanan", 11, 4)

	id, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{
		Challenger: "colin", Challenged: "kumanan", GameID: uintPtr(gameID),
	})
	s.Require().NoError(err)

	all, err := s.store.ListChallenges(s.ctx, true, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(id, all[0].ID)
	s.Require().NotNil(all[0].GameID)
	s.Equal(gameID, *all[0].GameID)

	// a completed challenge leaves room for an open one
	s.issueChallenge("kumanan", "colin")
}

func (s *ChallengeServiceSuite) TestIssueChallengeGameAlreadySettled() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)
	s.issueChallenge("colin", "kumanan")
	gameID := s.registerGame("colin", "kumanan", 21, 5)

	_, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{
		Challenger: "colin", Challenged: "kumanan", GameID: uintPtr(gameID),
	})
	s.ErrorIs(err, models.ErrGameAlreadySettles)
	s.Equal(map[string][]string{
		"game_id": {fmt.Sprintf("Game %d already settles another challenge", gameID)},
	}, s.requireValidation(err))

	s.Equal(1, s.challengesSettledBy(gameID))
}

func (s *ChallengeServiceSuite) TestIssueChallengeGameFromOtherPlayers() {
	s.addPlayer("ann", 1200)
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)
	s.issueChallenge("colin", "kumanan")
	gameID := s.registerGame("colin", "kumanan", 21, 5)

	_, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{
		Challenger: "ann", Challenged: "colin", GameID: uintPtr(gameID),
	})
	s.ErrorIs(err, models.ErrGamePlayersMismatch)
	s.Equal(map[string][]string{
		"game_id": {fmt.Sprintf(`Game %d was not played between "ann" and "colin"`, gameID)},
	}, s.requireValidation(err))

	s.Equal(1, s.challengesSettledBy(gameID))
	open, err := s.store.ListChallenges(s.ctx, false, nil)
	s.Require().NoError(err)
	s.Empty(open)
}

func (s *ChallengeServiceSuite) TestIssueCompletedChallengeFromLoser() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)
	gameID := s.registerGame("colin", "kumanan", 21, 5)

	_, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{
		Challenger: "kumanan", Challenged: "colin", GameID: uintPtr(gameID),
	})
	s.Require().NoError(err)
	s.Equal(1, s.challengesSettledBy(gameID))
}

func (s *ChallengeServiceSuite) challengesSettledBy(gameID uint) int {
	all, err := s.store.ListChallenges(s.ctx, true, nil)
	s.Require().NoError(err)

	count := 0
	for _, c := range all {
		if c.GameID != nil && *c.GameID == gameID {
			count++
		}
	}
	return count
}

func (s *ChallengeServiceSuite) TestIssueChallengeUnknownGame() {
	s.addPlayer("colin", 1200)
	s.addPlayer("kumanan", 1200)

	_, err := s.challenges.IssueChallenge(s.ctx, IssueChallengeInput{
		Challenger: "colin", Challenged: "kumanan", GameID: uintPtr(99),
	})
	s.ErrorIs(err, models.ErrUnknownGame)
	s.Equal(map[string][]string{"game_id": {"Game 99 does not exist"}}, s.requireValidation(err))
}
