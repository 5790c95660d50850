package user

import (
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/validator"
)

type CreateUserRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	WorkplaceID *string `json:"workplace_id"`
	PositionID  *string `json:"position_id"`
	ScheduleID  *string `json:"schedule_id"`

	CompanyID string `json:"-"`
}

var roleValues = []string{string(RoleSuperAdmin), string(RoleAdmin), string(RoleEmployee)}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if !validator.IsInSlice(r.Role, roleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: super_admin, admin, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID          string  `json:"-"`
	FullName    *string `json:"full_name"`
	WorkplaceID *string `json:"workplace_id"`
	PositionID  *string `json:"position_id"`
	ScheduleID  *string `json:"schedule_id"`
	Active      *bool   `json:"active"`

	CompanyID string `json:"-"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	WorkplaceID *string `json:"workplace_id,omitempty"`
	PositionID  *string `json:"position_id,omitempty"`
	ScheduleID  *string `json:"schedule_id,omitempty"`
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
