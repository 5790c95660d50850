package schedule

import (
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	Name         string  `json:"name"`
	WorkplaceID  *string `json:"workplace_id"`
	PositionID   *string `json:"position_id"`
	GraceMinutes *int    `json:"grace_minutes"`

	CompanyID string `json:"-"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateScheduleRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name"`
	GraceMinutes *int    `json:"grace_minutes"`
	Active       *bool   `json:"active"`

	CompanyID string `json:"-"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateScheduleRangeRequest struct {
	ScheduleID string `json:"-"`
	StartDay   *int   `json:"start_day"`
	EndDay     *int   `json:"end_day"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	NightShift bool   `json:"night_shift"`

	CompanyID string `json:"-"`
}

func (r *CreateScheduleRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDay == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_day",
			Message: "start_day is required",
		})
	} else if *r.StartDay < 0 || *r.StartDay > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "start_day",
			Message: "start_day must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	if r.EndDay == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_day",
			Message: "end_day is required",
		})
	} else if *r.EndDay < 0 || *r.EndDay > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "end_day",
			Message: "end_day must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	// Wrap-around ranges (e.g. Friday to Monday) are rejected outright so the
	// numeric containment check in the catalog stays total.
	if r.StartDay != nil && r.EndDay != nil && *r.StartDay > *r.EndDay {
		errs = append(errs, validator.ValidationError{
			Field:   "end_day",
			Message: "end_day must not be before start_day; ranges cannot wrap across the week boundary",
		})
	}

	checkIn, err := ParseTimeOfDay(r.CheckIn)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be a valid HH:MM:SS time",
		})
	}
	checkOut, err := ParseTimeOfDay(r.CheckOut)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be a valid HH:MM:SS time",
		})
	}
	if err == nil && !r.NightShift && checkOut <= checkIn {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be after check_in unless night_shift is set",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateScheduleRangeRequest struct {
	ID         string  `json:"-"`
	StartDay   *int    `json:"start_day"`
	EndDay     *int    `json:"end_day"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	NightShift *bool   `json:"night_shift"`

	CompanyID string `json:"-"`
}

func (r *UpdateScheduleRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDay != nil && (*r.StartDay < 0 || *r.StartDay > 6) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_day",
			Message: "start_day must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	if r.EndDay != nil && (*r.EndDay < 0 || *r.EndDay > 6) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_day",
			Message: "end_day must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	if r.CheckIn != nil {
		if _, err := ParseTimeOfDay(*r.CheckIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid HH:MM:SS time",
			})
		}
	}
	if r.CheckOut != nil {
		if _, err := ParseTimeOfDay(*r.CheckOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid HH:MM:SS time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID           string                  `json:"id"`
	CompanyID    string                  `json:"company_id"`
	Name         string                  `json:"name"`
	WorkplaceID  *string                 `json:"workplace_id,omitempty"`
	PositionID   *string                 `json:"position_id,omitempty"`
	GraceMinutes int                     `json:"grace_minutes"`
	Active       bool                    `json:"active"`
	Ranges       []ScheduleRangeResponse `json:"ranges,omitempty"`
	CreatedAt    string                  `json:"created_at"`
	UpdatedAt    string                  `json:"updated_at"`
}

type ScheduleRangeResponse struct {
	ID         string `json:"id"`
	ScheduleID string `json:"schedule_id"`
	StartDay   int    `json:"start_day"`
	EndDay     int    `json:"end_day"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	NightShift bool   `json:"night_shift"`
}

type ListScheduleResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Schedules  []ScheduleResponse `json:"schedules"`
}

type ScheduleFilter struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	CompanyID string `json:"-"`
}

func (f *ScheduleFilter) Validate() error {
	var errs validator.ValidationErrors

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
