package attendance

import (
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	UserID    string `json:"-"`
	CompanyID string `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	UserID    string `json:"-"`
	CompanyID string `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID                string  `json:"-"`
	CheckIn           *string `json:"check_in"`  // "2006-01-02 15:04:05" or "15:04:05"
	CheckOut          *string `json:"check_out"` // same formats
	TypeAssistance    *string `json:"type_assistance"`
	PermissionSeconds *int    `json:"permission_seconds"`

	CompanyID string `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TypeAssistance != nil && !validator.IsInSlice(*r.TypeAssistance, TypeAssistanceValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type_assistance",
			Message: "type_assistance is not a recognized classification",
		})
	}
	if r.PermissionSeconds != nil && *r.PermissionSeconds < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "permission_seconds",
			Message: "permission_seconds must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       *string `json:"user_name,omitempty"`
	ScheduleID     string  `json:"schedule_id"`
	Date           string  `json:"date"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	TypeAssistance string  `json:"type_assistance"`
	LateTime       *string `json:"late_time,omitempty"`
	HoursWorked    *string `json:"hours_worked,omitempty"`
	AdjustedHours  *string `json:"adjusted_hours_worked,omitempty"`
	OvertimeHours  *string `json:"overtime_hours,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type AttendanceFilter struct {
	UserID         *string `json:"user_id,omitempty"`
	ScheduleID     *string `json:"schedule_id,omitempty"`
	Date           *string `json:"date,omitempty"`
	StartDate      *string `json:"start_date,omitempty"`
	EndDate        *string `json:"end_date,omitempty"`
	TypeAssistance *string `json:"type_assistance,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	CompanyID string `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid YYYY-MM-DD date",
			})
		}
	}
	if f.TypeAssistance != nil && !validator.IsInSlice(*f.TypeAssistance, TypeAssistanceValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type_assistance",
			Message: "type_assistance is not a recognized classification",
		})
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecalculationReport summarizes one recalculation batch. Skipped records are
// reported, not fatal; one malformed historical record must not block the rest.
type RecalculationReport struct {
	Total   int                    `json:"total"`
	Updated []string               `json:"updated"`
	Skipped []RecalculationFailure `json:"skipped,omitempty"`
}

type RecalculationFailure struct {
	AttendanceID string `json:"attendance_id"`
	Reason       string `json:"reason"`
}
