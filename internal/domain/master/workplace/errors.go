package workplace

import "errors"

var (
	ErrWorkplaceNotFound = errors.New("workplace not found")
	ErrWorkplaceInactive = errors.New("workplace is not active")
)
