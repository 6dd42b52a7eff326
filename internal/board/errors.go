package board

import "errors"

var (
	// ErrValidation is returned when a title or content is empty after trimming.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced column or card does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange is returned when a column index is outside the board.
	ErrOutOfRange = errors.New("index out of range")
)
