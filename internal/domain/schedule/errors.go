package schedule

import "errors"

var (
	// Schedule errors
	ErrScheduleNotFound        = errors.New("schedule not found")
	ErrScheduleAlreadyDeleted  = errors.New("schedule not found or already deleted")
	ErrDuplicateActiveSchedule = errors.New("an active schedule already exists for this workplace and position")

	// Schedule range errors
	ErrScheduleRangeNotFound = errors.New("schedule range not found")
	ErrNoScheduleForDay      = errors.New("no schedule defined for this day")
	ErrWrapAroundRange       = errors.New("day-of-week range must not wrap across the week boundary")
	ErrOverlappingRange      = errors.New("another range already covers one of these days")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be after check-in")

	// Validation errors
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)
