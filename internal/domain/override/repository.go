package override

import (
	"context"
	"time"
)

type ScheduleChangeRepository interface {
	Create(ctx context.Context, change ScheduleChange) (ScheduleChange, error)
	GetByID(ctx context.Context, id string, companyID string) (ScheduleChange, error)
	Update(ctx context.Context, change ScheduleChange) error
	Delete(ctx context.Context, id string, companyID string) error
	List(ctx context.Context, companyID string, filter OverrideFilter) ([]ScheduleChange, int64, error)

	// FindByScopeAndDate returns the change for (scope, date) using exact-date
	// equality, or nil when none exists.
	FindByScopeAndDate(ctx context.Context, scope Scope, date time.Time, companyID string) (*ScheduleChange, error)
}

type ScheduleExceptionRepository interface {
	Create(ctx context.Context, exc ScheduleException) (ScheduleException, error)
	GetByID(ctx context.Context, id string, companyID string) (ScheduleException, error)
	Update(ctx context.Context, exc ScheduleException) error
	Delete(ctx context.Context, id string, companyID string) error
	List(ctx context.Context, companyID string, filter OverrideFilter) ([]ScheduleException, int64, error)

	// FindByScopeAndDate returns the exception whose [start_date, end_date]
	// contains date for the given scope, or nil when none exists.
	FindByScopeAndDate(ctx context.Context, scope Scope, date time.Time, companyID string) (*ScheduleException, error)

	// FindHolidayByDate matches holiday-scoped exceptions for the company,
	// including global holidays with no company attached.
	FindHolidayByDate(ctx context.Context, companyID string, date time.Time) (*ScheduleException, error)

	// FindOverlapping returns exceptions for (scope) whose interval overlaps
	// [startDate, endDate]. excludeID skips the record being updated.
	FindOverlapping(ctx context.Context, scope Scope, startDate, endDate time.Time, excludeID *string, companyID string) ([]ScheduleException, error)
}

// EntityRef identifies the organizational context a date is resolved for.
// WorkplaceID and PositionID may be empty when the user has no assignment.
type EntityRef struct {
	UserID      string
	ScheduleID  string
	WorkplaceID string
	PositionID  string
	CompanyID   string
}

// Resolver walks the override hierarchy and produces the effective working
// window for an entity and date. Resolution is read-only and deterministic
// against an unchanged store.
type Resolver interface {
	ResolveEffectiveWindow(ctx context.Context, ref EntityRef, date time.Time) (EffectiveWindow, error)
}

type OverrideService interface {
	CreateChange(ctx context.Context, req CreateChangeRequest) (ChangeResponse, error)
	GetChange(ctx context.Context, id string, companyID string) (ChangeResponse, error)
	ListChanges(ctx context.Context, filter OverrideFilter) (ListChangeResponse, error)
	UpdateChange(ctx context.Context, req UpdateChangeRequest) (ChangeResponse, error)
	DeleteChange(ctx context.Context, id string, companyID string) error

	CreateException(ctx context.Context, req CreateExceptionRequest) (ExceptionResponse, error)
	GetException(ctx context.Context, id string, companyID string) (ExceptionResponse, error)
	ListExceptions(ctx context.Context, filter OverrideFilter) (ListExceptionResponse, error)
	UpdateException(ctx context.Context, req UpdateExceptionRequest) (ExceptionResponse, error)
	DeleteException(ctx context.Context, id string, companyID string) error
}
