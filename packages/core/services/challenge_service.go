package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"core/events"
	"core/models"
	"core/store"
)

type ChallengeService struct {
	deps Deps
}

func NewChallengeService(deps Deps) *ChallengeService {
	return &ChallengeService{
		deps: deps.withDefaults(),
	}
}

type IssueChallengeInput struct {
	Challenger  string
	Challenged  string
	TimeCreated *time.Time
	// GameID records a challenge that was already played.
	GameID *uint
}

// IssueChallenge records a challenge between two players and returns its id.
// Only one open challenge may exist per pair of players, in either direction.
func (s *ChallengeService) IssueChallenge(ctx context.Context, in IssueChallengeInput) (uint, error) {
	verr := &ValidationError{}

	challenger, err := resolvePlayer(ctx, s.deps.Store, verr, "challenger", in.Challenger)
	if err != nil {
		return 0, err
	}
	challenged, err := resolvePlayer(ctx, s.deps.Store, verr, "challenged", in.Challenged)
	if err != nil {
		return 0, err
	}

	if in.Challenger != "" && in.Challenger == in.Challenged {
		verr.Add(SchemaField, models.ErrDuplicatePlayers, duplicatePlayersMessage(in.Challenger))
	}

	if in.GameID != nil {
		game, err := s.deps.Store.GetGame(ctx, *in.GameID)
		switch {
		case errors.Is(err, models.ErrGameNotFound):
			verr.Add("game_id", models.ErrUnknownGame, unknownGameMessage(*in.GameID))
		case err != nil:
			return 0, err
		case challenger != nil && challenged != nil && !playedBetween(game, challenger, challenged):
			verr.Add("game_id", models.ErrGamePlayersMismatch,
				gamePlayersMismatchMessage(game.ID, challenger.Name, challenged.Name))
		}
	}

	if err := verr.Err(); err != nil {
		return 0, err
	}

	timeCreated := s.deps.timestamp(in.TimeCreated)

	var challenge *models.Challenge
	err = s.deps.Store.Transaction(ctx, func(tx *store.Store) error {
		open, err := tx.FindOpenChallengeBetween(ctx, challenger, challenged)
		if err != nil {
			return err
		}
		if open != nil {
			return models.ErrOpenChallengeExists
		}

		challenge, err = tx.CreateChallenge(ctx, challenger, challenged, timeCreated, in.GameID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrOpenChallengeExists):
			return 0, NewValidationError(SchemaField, models.ErrOpenChallengeExists, MsgOpenChallenge)
		case errors.Is(err, models.ErrGameAlreadySettles):
			return 0, NewValidationError("game_id", models.ErrGameAlreadySettles, gameAlreadySettlesMessage(*in.GameID))
		}
		return 0, err
	}

	s.deps.Logger.InfoContext(ctx, "challenge issued",
		slog.Uint64("challenge_id", uint64(challenge.ID)),
		slog.String("challenger", challenger.Name),
		slog.String("challenged", challenged.Name),
	)
	s.deps.committed(ctx, events.New(events.ChallengeIssued, s.deps.Clock.Now(), events.ChallengeData{
		ChallengeID: challenge.ID,
		Challenger:  challenger.Name,
		Challenged:  challenged.Name,
		GameID:      challenge.GameID,
	}))

	return challenge.ID, nil
}

// playedBetween reports whether game's winner and loser are a and b, in
// either order.
func playedBetween(game *models.Game, a, b *models.Player) bool {
	gl, gh := models.OrderedPair(game.WinnerID, game.LoserID)
	pl, ph := models.OrderedPair(a.ID, b.ID)
	return gl == pl && gh == ph
}
