package services

import (
	"context"
	"log/slog"
	"time"

	"core/events"
	"core/models"
)

// StaleChallengeService reports open challenges nobody has played for a
// while. It never modifies them.
type StaleChallengeService struct {
	deps   Deps
	maxAge time.Duration
}

func NewStaleChallengeService(deps Deps, maxAge time.Duration) *StaleChallengeService {
	return &StaleChallengeService{
		deps:   deps.withDefaults(),
		maxAge: maxAge,
	}
}

// FindStale returns open challenges older than the configured age, oldest
// first.
func (s *StaleChallengeService) FindStale(ctx context.Context) ([]models.Challenge, error) {
	cutoff := s.deps.Clock.Now().Add(-s.maxAge)
	return s.deps.Store.ListOpenChallengesBefore(ctx, cutoff)
}

// Report logs and publishes every stale challenge and returns how many were
// found.
func (s *StaleChallengeService) Report(ctx context.Context) (int, error) {
	stale, err := s.FindStale(ctx)
	if err != nil {
		return 0, err
	}

	now := s.deps.Clock.Now()
	evts := make([]events.Event, 0, len(stale))
	for _, c := range stale {
		s.deps.Logger.InfoContext(ctx, "stale challenge",
			slog.Uint64("challenge_id", uint64(c.ID)),
			slog.String("challenger", c.Challenger.Name),
			slog.String("challenged", c.Challenged.Name),
			slog.Duration("age", now.Sub(c.TimeCreated)),
		)
		evts = append(evts, events.New(events.ChallengeStale, now, events.ChallengeData{
			ChallengeID: c.ID,
			Challenger:  c.Challenger.Name,
			Challenged:  c.Challenged.Name,
		}))
	}
	s.deps.publish(ctx, evts...)

	return len(stale), nil
}
