package response

import (
	"errors"
	"net/http"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/auth"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/position"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/workplace"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, user.ErrNoScheduleAssigned):
		BadRequest(w, "User has no schedule assigned", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrScheduleRangeNotFound):
		NotFound(w, "Schedule range not found")
	case errors.Is(err, schedule.ErrDuplicateActiveSchedule):
		Conflict(w, "An active schedule already exists for this workplace and position")
	case errors.Is(err, schedule.ErrOverlappingRange):
		Conflict(w, "Another range already covers one of these days")
	case errors.Is(err, schedule.ErrWrapAroundRange):
		BadRequest(w, "Day-of-week range must not wrap across the week boundary", nil)
	case errors.Is(err, schedule.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out must be after check-in", nil)
	case errors.Is(err, schedule.ErrNoScheduleForDay):
		BadRequest(w, "No schedule defined for this day", nil)

	// Override domain errors
	case errors.Is(err, override.ErrChangeNotFound):
		NotFound(w, "Schedule change not found")
	case errors.Is(err, override.ErrExceptionNotFound):
		NotFound(w, "Schedule exception not found")
	case errors.Is(err, override.ErrDuplicateChange):
		Conflict(w, "A schedule change already exists for this scope and date")
	case errors.Is(err, override.ErrOverlappingException):
		Conflict(w, "An exception already covers part of this date range")
	case errors.Is(err, override.ErrTimesRequired):
		BadRequest(w, "check_in and check_out are required unless the exception is a day off", nil)
	case errors.Is(err, override.ErrInvalidDateRange):
		BadRequest(w, "end_date must not be before start_date", nil)
	case errors.Is(err, override.ErrInvalidScope):
		BadRequest(w, "Invalid override scope", nil)
	case errors.Is(err, override.ErrScopeEntityInvalid):
		BadRequest(w, "Scope entity not found or not active in this company", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open attendance record to check out of")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance record already has a check-out")
	case errors.Is(err, attendance.ErrDayOff):
		BadRequest(w, "No work expected on this date", nil)

	// Master data errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrInvalidTimezone):
		BadRequest(w, "Timezone is not a valid IANA zone name", nil)
	case errors.Is(err, workplace.ErrWorkplaceNotFound):
		NotFound(w, "Workplace not found")
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
