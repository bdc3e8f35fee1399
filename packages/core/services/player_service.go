package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"core/events"
	"core/models"
)

// MaxNameLength is the longest accepted player name, in characters.
const MaxNameLength = 64

type PlayerService struct {
	deps          Deps
	defaultRating int
}

func NewPlayerService(deps Deps, defaultRating int) *PlayerService {
	return &PlayerService{
		deps:          deps.withDefaults(),
		defaultRating: defaultRating,
	}
}

type CreatePlayerInput struct {
	Name        string
	Rating      *int
	TimeCreated *time.Time
}

// CreatePlayer registers a new player. Rating defaults to the configured
// initial rating.
func (s *PlayerService) CreatePlayer(ctx context.Context, in CreatePlayerInput) (*models.Player, error) {
	verr := &ValidationError{}

	switch {
	case in.Name == "":
		verr.Add("name", models.ErrMissingRequiredField, MsgMissingRequired)
	case utf8.RuneCountInString(in.Name) > MaxNameLength:
		verr.Add("name", models.ErrOutOfRangeValue, fmt.Sprintf("Longer than maximum length %d.", MaxNameLength))
	default:
		_, err := s.deps.Store.GetPlayerByName(ctx, in.Name)
		switch {
		case err == nil:
			verr.Add("name", models.ErrDuplicateName, duplicateNameMessage(in.Name))
		case !errors.Is(err, models.ErrPlayerNotFound):
			return nil, err
		}
	}

	rating := s.defaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	if rating < 1 {
		verr.Add("rating", models.ErrOutOfRangeValue, MsgRatingTooLow)
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	player, err := s.deps.Store.CreatePlayer(ctx, in.Name, rating, s.deps.timestamp(in.TimeCreated))
	if err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, models.ErrDuplicateName) {
			return nil, NewValidationError("name", models.ErrDuplicateName, duplicateNameMessage(in.Name))
		}
		return nil, err
	}

	s.deps.Logger.InfoContext(ctx, "player registered",
		slog.String("name", player.Name),
		slog.Int("rating", player.Rating),
	)
	s.deps.committed(ctx, events.New(events.PlayerRegistered, s.deps.Clock.Now(), events.PlayerRegisteredData{
		Name:   player.Name,
		Rating: player.Rating,
	}))

	return player, nil
}
