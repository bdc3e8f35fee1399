package services

import (
	"fmt"
	"strings"
)

// SchemaField keys failures that concern the request as a whole rather than
// one field.
const SchemaField = "_schema"

// Messages shared by the services and the HTTP binding layer.
const (
	MsgMissingRequired = "Missing data for required field."
	MsgRatingTooLow    = "Must be at least 1."
	MsgCountTooLow     = "Must be at least 1."
	MsgInvalidScore    = "Invalid score: winner score must be 21 or 11 and loser score must be at least one lower."
	MsgOpenChallenge   = "There is an open challenge between the two players"
)

// FieldError is one failed check. Err is a sentinel from the models package.
type FieldError struct {
	Field   string
	Err     error
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every failed check of a request. errors.Is matches
// any of the underlying sentinels.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field string, err error, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, err, message)
	return v
}

func (e *ValidationError) Add(field string, err error, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Err: err, Message: message})
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Err returns e, or nil when nothing failed.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// Messages groups messages by field in the order they were added.
func (e *ValidationError) Messages() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}

func unknownPlayerMessage(name string) string {
	return fmt.Sprintf("Player %q does not exist", name)
}

func duplicateNameMessage(name string) string {
	return fmt.Sprintf("Player %q already exists", name)
}

func duplicatePlayersMessage(name string) string {
	return fmt.Sprintf("Two players must be unique, but both are %q", name)
}

func unknownGameMessage(id uint) string {
	return fmt.Sprintf("Game %d does not exist", id)
}

func gameAlreadySettlesMessage(id uint) string {
	return fmt.Sprintf("Game %d already settles another challenge", id)
}

func gamePlayersMismatchMessage(id uint, a, b string) string {
	return fmt.Sprintf("Game %d was not played between %q and %q", id, a, b)
}
