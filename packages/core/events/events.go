package events

import (
	"context"
	"time"
)

// Event types published by the ladder.
const (
	PlayerRegistered  = "player.registered"
	GameRegistered    = "game.registered"
	ChallengeIssued   = "challenge.issued"
	ChallengeResolved = "challenge.resolved"
	ChallengeStale    = "challenge.stale"
)

// Event is a committed change to the ladder. Data is JSON encoded on the wire.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func New(eventType string, occurredAt time.Time, data any) Event {
	return Event{
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Data:       data,
	}
}

// Publisher delivers events to whoever listens. Publishing happens after the
// change is committed, so callers log failures instead of returning them.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type PlayerRegisteredData struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type GameRegisteredData struct {
	GameID          uint   `json:"game_id"`
	Winner          string `json:"winner"`
	Loser           string `json:"loser"`
	WinnerScore     int    `json:"winner_score"`
	LoserScore      int    `json:"loser_score"`
	WinnerRating    int    `json:"winner_rating"`
	LoserRating     int    `json:"loser_rating"`
	RatingExchanged int    `json:"rating_exchanged"`
}

type ChallengeData struct {
	ChallengeID uint   `json:"challenge_id"`
	Challenger  string `json:"challenger"`
	Challenged  string `json:"challenged"`
	GameID      *uint  `json:"game_id,omitempty"`
}
