package models

import "errors"

var (
	// Lookup errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameNotFound   = errors.New("game not found")

	// Validation errors
	ErrUnknownPlayer        = errors.New("unknown player")
	ErrUnknownGame          = errors.New("unknown game")
	ErrDuplicatePlayers     = errors.New("players must be different")
	ErrDuplicateName        = errors.New("player name already used")
	ErrInvalidScore         = errors.New("invalid score")
	ErrOpenChallengeExists  = errors.New("open challenge already exists")
	ErrGameAlreadySettles   = errors.New("game already settles a challenge")
	ErrGamePlayersMismatch  = errors.New("game was not played between the challenge players")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrOutOfRangeValue      = errors.New("value out of range")
	ErrInvalidValue         = errors.New("invalid value")
)
