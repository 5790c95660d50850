package attendance

import "errors"

var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("an attendance record already exists for this user and date")
	ErrNotCheckedIn      = errors.New("no open attendance record to check out of")
	ErrAlreadyCheckedOut = errors.New("attendance record already has a check-out")
	ErrDayOff            = errors.New("no work expected on this date")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrMissingCheckIn     = errors.New("attendance record has no check-in timestamp")
)
