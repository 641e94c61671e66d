package poker

import "errors"

// Error taxonomy for the betting engine. All of these are recoverable at
// the call site: a failed action leaves the round untouched and the caller
// simply re-solicits input.
var (
	// ErrInvalidAction means a precondition was not met: insufficient
	// chips, checking a live bet, acting out of turn.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidConfiguration means the round cannot exist as configured,
	// e.g. fewer than two players.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInternalInvariant means state the engine itself maintains was
	// found broken, e.g. the deck ran out mid-hand.
	ErrInternalInvariant = errors.New("internal invariant violated")
)
