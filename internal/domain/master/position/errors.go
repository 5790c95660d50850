package position

import "errors"

var (
	ErrPositionNotFound = errors.New("position not found")
	ErrPositionInactive = errors.New("position is not active")
)
