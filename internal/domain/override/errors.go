package override

import "errors"

var (
	// Schedule change errors
	ErrChangeNotFound  = errors.New("schedule change not found")
	ErrDuplicateChange = errors.New("a schedule change already exists for this scope and date")

	// Schedule exception errors
	ErrExceptionNotFound    = errors.New("schedule exception not found")
	ErrOverlappingException = errors.New("an exception already covers part of this date range")
	ErrTimesRequired        = errors.New("check-in and check-out are required unless the exception is a day off")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")

	// Scope errors
	ErrInvalidScope       = errors.New("invalid override scope")
	ErrScopeEntityInvalid = errors.New("scope entity not found or not active in this company")
)
