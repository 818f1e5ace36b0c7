package repl

import "errors"

var (
	// ErrOutOfBounds reports a history index outside the stored entries.
	ErrOutOfBounds = errors.New("history index out of bounds")
)
