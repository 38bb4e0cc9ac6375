package blackjack

import (
	"errors"
	"fmt"
)

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrAlreadySeated is returned when an identity tries to join twice
const ErrAlreadySeated UserError = "you already have a seat at the table"

// ErrTableFull is returned when every seat is taken
const ErrTableFull UserError = "the table is full"

// ErrJoinClosed is returned when a player tries to join outside of the betting phase
const ErrJoinClosed UserError = "seats open again when betting starts"

// ErrWrongPhase is returned when an action is attempted in the wrong phase
var ErrWrongPhase = errors.New("action not allowed in this phase")

// ErrNotSeated is returned when the caller does not have a seat
var ErrNotSeated = errors.New("caller is not seated")

// ErrNotYourTurn is returned when the caller is not the active seat
var ErrNotYourTurn = errors.New("not caller's turn")

// ErrNotPrivileged is returned when a host-only action is attempted by anyone else
var ErrNotPrivileged = errors.New("caller is not privileged")

// ErrSeatNotFound is returned when a seat index is empty or out of range
var ErrSeatNotFound = errors.New("seat not found")

// ErrInvalidAmount is returned when a bet is not positive
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrCannotDouble is returned when a double down is attempted on a hand that does not qualify
var ErrCannotDouble = errors.New("double down requires two cards and a bet")

// ErrSplitUnsupported is returned for every split attempt
var ErrSplitUnsupported = errors.New("split is not supported")

// wrongPhase wraps ErrWrongPhase with the current phase
func wrongPhase(p Phase) error {
	return fmt.Errorf("%w: %s", ErrWrongPhase, p)
}
