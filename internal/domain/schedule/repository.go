package schedule

import (
	"context"
	"time"
)

// ScheduleRepository defines data access for schedules. Every method takes a
// companyID to keep tenants isolated at the query level.
type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule) (Schedule, error)
	GetByID(ctx context.Context, id string, companyID string) (Schedule, error)
	List(ctx context.Context, companyID string, filter ScheduleFilter) ([]Schedule, int64, error)
	Update(ctx context.Context, req UpdateScheduleRequest, companyID string) (Schedule, error)
	// SoftDelete marks the schedule deleted and cascades the soft delete to
	// its ranges and to changes and exceptions scoped to it.
	SoftDelete(ctx context.Context, id string, companyID string) error

	// FindActiveByScope returns the active schedule anchored to the given
	// workplace+position pair, if any. Used to enforce the one-active-schedule
	// invariant before create.
	FindActiveByScope(ctx context.Context, workplaceID, positionID *string, companyID string) (*Schedule, error)

	ListActiveIDsByCompany(ctx context.Context, companyID string) ([]string, error)
	ListActiveIDsByWorkplace(ctx context.Context, workplaceID string, companyID string) ([]string, error)
	ListActiveIDsByPosition(ctx context.Context, positionID string, companyID string) ([]string, error)
}

type ScheduleRangeRepository interface {
	Create(ctx context.Context, r ScheduleRange, companyID string) (ScheduleRange, error)
	GetByID(ctx context.Context, id string, companyID string) (ScheduleRange, error)
	GetByScheduleID(ctx context.Context, scheduleID string, companyID string) ([]ScheduleRange, error)
	Update(ctx context.Context, req UpdateScheduleRangeRequest, companyID string) error
	Delete(ctx context.Context, id string, companyID string) error
}

// Catalog answers "what is the base working window for this date" from the
// weekly recurring ranges alone, before overrides are considered.
type Catalog interface {
	ResolveBaseWindow(ctx context.Context, scheduleID string, date time.Time, companyID string) (Window, error)
}

type ScheduleService interface {
	Catalog

	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	GetSchedule(ctx context.Context, id string, companyID string) (ScheduleResponse, error)
	ListSchedules(ctx context.Context, filter ScheduleFilter) (ListScheduleResponse, error)
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id string, companyID string) error

	CreateRange(ctx context.Context, req CreateScheduleRangeRequest) (ScheduleRangeResponse, error)
	UpdateRange(ctx context.Context, req UpdateScheduleRangeRequest) error
	DeleteRange(ctx context.Context, id string, companyID string) error
}
