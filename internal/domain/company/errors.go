package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrInvalidTimezone = errors.New("timezone is not a valid IANA zone name")
)
