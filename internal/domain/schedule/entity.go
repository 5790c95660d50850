package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as whole seconds since midnight.
// All window arithmetic in the engine is done in this unit; HH:MM:SS strings
// exist only at the storage and API boundary.
type TimeOfDay int

const SecondsPerDay = 24 * 60 * 60

// ParseTimeOfDay parses "15:04:05" (or "15:04") into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
		}
	}
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

// TimeOfDayFromTime extracts the wall-clock seconds of t in its own location.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (t TimeOfDay) String() string {
	secs := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < SecondsPerDay
}

type Schedule struct {
	ID           string
	CompanyID    string
	Name         string
	WorkplaceID  *string
	PositionID   *string
	GraceMinutes int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	Ranges []ScheduleRange
}

// ScheduleRange is one weekly recurring working window. StartDay and EndDay
// are day-of-week ordinals (Sunday=0 .. Saturday=6) forming an inclusive,
// non-wrapping interval; wrap-around ranges are rejected at creation.
type ScheduleRange struct {
	ID         string
	ScheduleID string
	StartDay   int
	EndDay     int
	CheckIn    TimeOfDay
	CheckOut   TimeOfDay
	NightShift bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContainsDay reports whether the weekday ordinal falls inside the range.
func (r ScheduleRange) ContainsDay(day int) bool {
	return r.StartDay <= day && day <= r.EndDay
}

// Window returns the working window the range defines.
func (r ScheduleRange) Window() Window {
	return Window{CheckIn: r.CheckIn, CheckOut: r.CheckOut, NightShift: r.NightShift}
}

// Window is an expected check-in/check-out pair for one working day.
// NightShift means the checkout belongs to the following calendar day.
type Window struct {
	CheckIn    TimeOfDay
	CheckOut   TimeOfDay
	NightShift bool
}

// SpanSeconds is the scheduled length of the window.
func (w Window) SpanSeconds() int {
	if w.NightShift {
		return int(w.CheckOut) + SecondsPerDay - int(w.CheckIn)
	}
	return int(w.CheckOut) - int(w.CheckIn)
}
