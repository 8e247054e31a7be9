package tournament

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure the engine reports wraps exactly one of these so
// callers can tell "fix your input" from "fix the state" from "not found".
var (
	ErrValidation   = errors.New("validation failed")
	ErrPrecondition = errors.New("precondition failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrNameRequired    = fmt.Errorf("%w: missing or invalid name", ErrValidation)
	ErrInvalidTimeGame = fmt.Errorf("%w: timeGame must be a positive integer (minutes)", ErrValidation)
	ErrInvalidResult   = fmt.Errorf("%w: invalid result value", ErrValidation)
	ErrInvalidScores   = fmt.Errorf("%w: scores must be 0, 0.5 or 1 and sum to 1", ErrValidation)
	ErrInvalidByeScore = fmt.Errorf("%w: bye score must be 0.5", ErrValidation)
	ErrMissingResult   = fmt.Errorf("%w: provide either result or both scoreA and scoreB", ErrValidation)
	ErrAmbiguousResult = fmt.Errorf("%w: provide result or scores, not both", ErrValidation)

	ErrNotEnoughParticipants   = fmt.Errorf("%w: not enough participants", ErrPrecondition)
	ErrPreviousRoundIncomplete = fmt.Errorf("%w: previous round not complete", ErrPrecondition)
	ErrAllRoundsCreated        = fmt.Errorf("%w: all rounds already created", ErrPrecondition)
	ErrNoRounds                = fmt.Errorf("%w: no rounds created", ErrPrecondition)
	ErrTournamentClosed        = fmt.Errorf("%w: tournament already closed", ErrPrecondition)

	ErrAlreadyJoined = fmt.Errorf("%w: already joined", ErrConflict)

	ErrTournamentNotFound = fmt.Errorf("%w: tournament not found", ErrNotFound)
	ErrMatchNotFound      = fmt.Errorf("%w: match not found", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
)

// RoundIncompleteError is returned by close when a created round still has an
// unscored match.
type RoundIncompleteError struct {
	Round int
}

func (e *RoundIncompleteError) Error() string {
	return fmt.Sprintf("%s: round %d not complete", ErrPrecondition, e.Round)
}

func (e *RoundIncompleteError) Unwrap() error {
	return ErrPrecondition
}

// Kind returns the name of the error kind err wraps, or "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
