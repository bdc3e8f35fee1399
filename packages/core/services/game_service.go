package services

import (
	"context"
	"log/slog"
	"time"

	"core/events"
	"core/models"
	"core/store"
	"core/utils"
)

type GameService struct {
	deps Deps
}

func NewGameService(deps Deps) *GameService {
	return &GameService{
		deps: deps.withDefaults(),
	}
}

type RegisterGameInput struct {
	Winner      string
	Loser       string
	WinnerScore int
	LoserScore  int
	TimeCreated *time.Time
}

// RegisterGame records a game, moves rating from loser to winner and resolves
// the open challenge between the two players, if any. Everything happens in
// one transaction. It returns the new game id.
func (s *GameService) RegisterGame(ctx context.Context, in RegisterGameInput) (uint, error) {
	verr := &ValidationError{}

	winner, err := resolvePlayer(ctx, s.deps.Store, verr, "winner", in.Winner)
	if err != nil {
		return 0, err
	}
	loser, err := resolvePlayer(ctx, s.deps.Store, verr, "loser", in.Loser)
	if err != nil {
		return 0, err
	}

	if in.Winner != "" && in.Winner == in.Loser {
		verr.Add(SchemaField, models.ErrDuplicatePlayers, duplicatePlayersMessage(in.Winner))
	}

	isShortGame, err := utils.ClassifyScore(in.WinnerScore, in.LoserScore)
	if err != nil {
		verr.Add(SchemaField, err, MsgInvalidScore)
	}

	if err := verr.Err(); err != nil {
		return 0, err
	}

	timeCreated := s.deps.timestamp(in.TimeCreated)

	var (
		game       *models.Game
		exchanged  int
		resolution *models.Challenge
	)

	err = s.deps.Store.Transaction(ctx, func(tx *store.Store) error {
		locked, err := tx.LockPlayers(ctx, winner.ID, loser.ID)
		if err != nil {
			return err
		}
		w, l := locked[winner.ID], locked[loser.ID]

		before := w.Rating
		w.Rating, l.Rating = utils.UpdateRatings(w.Rating, l.Rating, isShortGame)
		exchanged = w.Rating - before

		game, err = tx.CreateGame(ctx, w, l, in.WinnerScore, in.LoserScore, timeCreated)
		if err != nil {
			return err
		}

		challenge, err := tx.FindOpenChallengeBetween(ctx, w, l)
		if err != nil || challenge == nil {
			return err
		}

		ok, err := tx.ResolveChallenge(ctx, challenge, game)
		if err != nil {
			return err
		}
		if ok {
			resolution = challenge
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.deps.Logger.InfoContext(ctx, "game registered",
		slog.Uint64("game_id", uint64(game.ID)),
		slog.String("winner", game.Winner.Name),
		slog.String("loser", game.Loser.Name),
		slog.Int("rating_exchanged", exchanged),
	)

	now := s.deps.Clock.Now()
	evts := []events.Event{
		events.New(events.GameRegistered, now, events.GameRegisteredData{
			GameID:          game.ID,
			Winner:          game.Winner.Name,
			Loser:           game.Loser.Name,
			WinnerScore:     game.WinnerScore,
			LoserScore:      game.LoserScore,
			WinnerRating:    game.Winner.Rating,
			LoserRating:     game.Loser.Rating,
			RatingExchanged: exchanged,
		}),
	}
	if resolution != nil {
		challenger, challenged := game.Winner.Name, game.Loser.Name
		if resolution.ChallengerID == game.LoserID {
			challenger, challenged = challenged, challenger
		}
		evts = append(evts, events.New(events.ChallengeResolved, now, events.ChallengeData{
			ChallengeID: resolution.ID,
			Challenger:  challenger,
			Challenged:  challenged,
			GameID:      resolution.GameID,
		}))
	}
	s.deps.committed(ctx, evts...)

	return game.ID, nil
}
