package errors

import "errors"

var (
	ErrOutOfBounds           = errors.New("coordinate is outside the board")
	ErrCellOccupied          = errors.New("cell is already occupied")
	ErrMalformedMoveSequence = errors.New("malformed move sequence")
	ErrAnalysisNotFound      = errors.New("game analysis not found")
	ErrInternal              = errors.New("internal error")
)
