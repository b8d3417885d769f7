package engine

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a broken data invariant. The operation is aborted and nothing is written.
var ErrInvariant = errors.New("invariant violation")

var (
	ErrHoleNotFound = fmt.Errorf("%w: hole not found", ErrInvariant)
	ErrCardConflict = fmt.Errorf("%w: card allocation kept colliding", ErrInvariant)

	ErrInvalidHole       = errors.New("hole number must be between 1 and 18")
	ErrInvalidPutts      = errors.New("putt count out of range")
	ErrUnknownPlayer     = errors.New("player is not part of this session")
	ErrSessionEnded      = errors.New("session has ended")
	ErrNotHost           = errors.New("only the host can do that")
	ErrNoTiePending      = errors.New("no chip tie to resolve")
	ErrNotTieCandidate   = errors.New("player is not tied for the chip")
	ErrInvalidJoinCode   = errors.New("join code is too short")
	ErrInvalidSettings   = errors.New("invalid game settings")
	ErrJoinCodeExhausted = errors.New("could not allocate a unique join code")
)
