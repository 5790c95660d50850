package workplace

import (
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/validator"
)

type CreateWorkplaceRequest struct {
	Name string `json:"name"`

	CompanyID string `json:"-"`
}

func (r *CreateWorkplaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkplaceRequest struct {
	ID     string  `json:"-"`
	Name   *string `json:"name"`
	Active *bool   `json:"active"`

	CompanyID string `json:"-"`
}

func (r *UpdateWorkplaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkplaceResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
