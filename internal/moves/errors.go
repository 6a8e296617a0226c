package moves

import "errors"

var (
	// ErrInvalidNotation is returned when a notation token cannot be parsed.
	ErrInvalidNotation = errors.New("moves: invalid notation")

	// ErrUnknownMove is returned when a name or direction has no registered
	// move.
	ErrUnknownMove = errors.New("moves: unknown move")
)
