package override

import (
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
)

// ScopeKind discriminates which organizational level an override targets.
// Exactly one level is representable per override; the five-nullable-columns
// shape this replaces is confined to the storage layer.
type ScopeKind string

const (
	ScopeSchedule  ScopeKind = "SCHEDULE"
	ScopeUser      ScopeKind = "USER"
	ScopeWorkplace ScopeKind = "WORKPLACE"
	ScopePosition  ScopeKind = "POSITION"
	ScopeCompany   ScopeKind = "COMPANY"
	// ScopeHoliday is a company-wide day off; an empty EntityID makes it
	// global across tenants.
	ScopeHoliday ScopeKind = "HOLIDAY"
)

var ChangeScopeKinds = []string{
	string(ScopeSchedule),
	string(ScopeWorkplace),
	string(ScopePosition),
	string(ScopeCompany),
}

var ExceptionScopeKinds = []string{
	string(ScopeUser),
	string(ScopeWorkplace),
	string(ScopePosition),
	string(ScopeCompany),
	string(ScopeHoliday),
}

type Scope struct {
	Kind     ScopeKind
	EntityID string
}

// ScheduleChange is a single-date override of check-in/check-out for one
// scope level. Work is still expected on the date; only the times move.
type ScheduleChange struct {
	ID          string
	CompanyID   string
	Scope       Scope
	ChangeDate  time.Time
	NewCheckIn  schedule.TimeOfDay
	NewCheckOut schedule.TimeOfDay
	NightShift  bool
	Reason      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// ScheduleException is a date-range override that can mark entire days off
// (leave, holidays) or replace the working window for the span.
type ScheduleException struct {
	ID        string
	CompanyID string
	Scope     Scope
	StartDate time.Time
	EndDate   time.Time
	IsDayOff  bool
	CheckIn   *schedule.TimeOfDay
	CheckOut  *schedule.TimeOfDay
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// DurationDays is the inclusive length of the exception span.
func (e ScheduleException) DurationDays() int {
	return int(e.EndDate.Sub(e.StartDate).Hours()/24) + 1
}

// Covers reports whether date falls inside [StartDate, EndDate].
func (e ScheduleException) Covers(date time.Time) bool {
	return !date.Before(e.StartDate) && !date.After(e.EndDate)
}

// WindowSource records which layer produced an effective window.
type WindowSource string

const (
	SourceException WindowSource = "exception"
	SourceChange    WindowSource = "change"
	SourceSchedule  WindowSource = "schedule"
)

// EffectiveWindow is the expected working window for one entity and date
// after the full override hierarchy has been resolved.
type EffectiveWindow struct {
	schedule.Window
	IsDayOff bool
	Source   WindowSource
	Reason   string
}
