package override

import (
	"strings"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/validator"
)

type CreateChangeRequest struct {
	ScopeKind   string `json:"scope_kind"`
	EntityID    string `json:"entity_id"`
	ChangeDate  string `json:"change_date"`
	NewCheckIn  string `json:"new_check_in"`
	NewCheckOut string `json:"new_check_out"`
	NightShift  bool   `json:"night_shift"`
	Reason      string `json:"reason"`

	CompanyID string `json:"-"`
}

func (r *CreateChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.ScopeKind, ChangeScopeKinds) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope_kind",
			Message: "scope_kind must be one of: " + strings.Join(ChangeScopeKinds, ", "),
		})
	}
	if validator.IsEmpty(r.EntityID) {
		errs = append(errs, validator.ValidationError{
			Field:   "entity_id",
			Message: "entity_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.ChangeDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "change_date",
			Message: "change_date must be a valid YYYY-MM-DD date",
		})
	}
	checkIn, inErr := schedule.ParseTimeOfDay(r.NewCheckIn)
	if inErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "new_check_in",
			Message: "new_check_in must be a valid HH:MM:SS time",
		})
	}
	checkOut, outErr := schedule.ParseTimeOfDay(r.NewCheckOut)
	if outErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "new_check_out",
			Message: "new_check_out must be a valid HH:MM:SS time",
		})
	}
	if inErr == nil && outErr == nil && !r.NightShift && checkOut <= checkIn {
		errs = append(errs, validator.ValidationError{
			Field:   "new_check_out",
			Message: "new_check_out must be after new_check_in unless night_shift is set",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateChangeRequest struct {
	ID          string  `json:"-"`
	NewCheckIn  *string `json:"new_check_in"`
	NewCheckOut *string `json:"new_check_out"`
	NightShift  *bool   `json:"night_shift"`
	Reason      *string `json:"reason"`

	CompanyID string `json:"-"`
}

func (r *UpdateChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NewCheckIn != nil {
		if _, err := schedule.ParseTimeOfDay(*r.NewCheckIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "new_check_in",
				Message: "new_check_in must be a valid HH:MM:SS time",
			})
		}
	}
	if r.NewCheckOut != nil {
		if _, err := schedule.ParseTimeOfDay(*r.NewCheckOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "new_check_out",
				Message: "new_check_out must be a valid HH:MM:SS time",
			})
		}
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateExceptionRequest struct {
	ScopeKind string  `json:"scope_kind"`
	EntityID  string  `json:"entity_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	IsDayOff  bool    `json:"is_day_off"`
	CheckIn   *string `json:"check_in"`
	CheckOut  *string `json:"check_out"`
	Reason    string  `json:"reason"`

	CompanyID string `json:"-"`
}

func (r *CreateExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.ScopeKind, ExceptionScopeKinds) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope_kind",
			Message: "scope_kind must be one of: " + strings.Join(ExceptionScopeKinds, ", "),
		})
	}
	// A holiday may omit entity_id, which makes it global.
	if r.ScopeKind != string(ScopeHoliday) && validator.IsEmpty(r.EntityID) {
		errs = append(errs, validator.ValidationError{
			Field:   "entity_id",
			Message: "entity_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid YYYY-MM-DD date",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid YYYY-MM-DD date",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if !r.IsDayOff {
		if r.CheckIn == nil || r.CheckOut == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in and check_out are required unless is_day_off is set",
			})
		} else {
			checkIn, inErr := schedule.ParseTimeOfDay(*r.CheckIn)
			checkOut, outErr := schedule.ParseTimeOfDay(*r.CheckOut)
			if inErr != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "check_in",
					Message: "check_in must be a valid HH:MM:SS time",
				})
			}
			if outErr != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "check_out",
					Message: "check_out must be a valid HH:MM:SS time",
				})
			}
			if inErr == nil && outErr == nil && checkOut <= checkIn {
				errs = append(errs, validator.ValidationError{
					Field:   "check_out",
					Message: "check_out must be after check_in",
				})
			}
		}
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateExceptionRequest struct {
	ID        string  `json:"-"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsDayOff  *bool   `json:"is_day_off"`
	CheckIn   *string `json:"check_in"`
	CheckOut  *string `json:"check_out"`
	Reason    *string `json:"reason"`

	CompanyID string `json:"-"`
}

func (r *UpdateExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid YYYY-MM-DD date",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid YYYY-MM-DD date",
			})
		}
	}
	if r.CheckIn != nil {
		if _, err := schedule.ParseTimeOfDay(*r.CheckIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid HH:MM:SS time",
			})
		}
	}
	if r.CheckOut != nil {
		if _, err := schedule.ParseTimeOfDay(*r.CheckOut); err != nil {
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

type ChangeResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	ScopeKind   string `json:"scope_kind"`
	EntityID    string `json:"entity_id"`
	ChangeDate  string `json:"change_date"`
	NewCheckIn  string `json:"new_check_in"`
	NewCheckOut string `json:"new_check_out"`
	NightShift  bool   `json:"night_shift"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ExceptionResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	ScopeKind    string  `json:"scope_kind"`
	EntityID     string  `json:"entity_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DurationDays int     `json:"duration_days"`
	IsDayOff     bool    `json:"is_day_off"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Reason       string  `json:"reason"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListChangeResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Changes    []ChangeResponse `json:"changes"`
}

type ListExceptionResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Exceptions []ExceptionResponse `json:"exceptions"`
}

type OverrideFilter struct {
	ScopeKind *string `json:"scope_kind,omitempty"`
	EntityID  *string `json:"entity_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	CompanyID string `json:"-"`
}

func (f *OverrideFilter) Validate() error {
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

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time, the
// canonical representation for calendar dates throughout the engine.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
