package apperror

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the core wraps exactly one of them.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrIllegalState       = errors.New("illegal state")
	ErrPersistenceFailure = errors.New("persistence failure")
)

var (
	ErrInvalidMove       = fmt.Errorf("%w: invalid move", ErrInvalidArgument)
	ErrUnknownMiniGame   = fmt.Errorf("%w: unknown mini-game", ErrInvalidArgument)
	ErrUnknownDifficulty = fmt.Errorf("%w: unknown difficulty", ErrInvalidArgument)
	ErrInvalidPlayers    = fmt.Errorf("%w: invalid players", ErrInvalidArgument)
	ErrUnknownPlayer     = fmt.Errorf("%w: unknown player", ErrInvalidArgument)
	ErrSquareMismatch    = fmt.Errorf("%w: square differs from selection", ErrInvalidArgument)

	ErrWrongStatus      = fmt.Errorf("%w: operation not allowed in current status", ErrIllegalState)
	ErrNotYourTurn      = fmt.Errorf("%w: it's not your turn", ErrIllegalState)
	ErrNoSelection      = fmt.Errorf("%w: no square selected", ErrIllegalState)
	ErrNotAITurn        = fmt.Errorf("%w: current player is not an AI", ErrIllegalState)
	ErrReentrantCall    = fmt.Errorf("%w: mutation from inside a listener", ErrIllegalState)
	ErrNoAvailableMoves = fmt.Errorf("%w: no available moves", ErrIllegalState)
)

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsIllegalState(err error) bool {
	return errors.Is(err, ErrIllegalState)
}
