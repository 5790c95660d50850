package attendance

import (
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
)

// ClassifyCheckIn compares an actual check-in time against the expected one
// and returns the classification plus the lateness in seconds. Arriving
// within the grace period, or early, counts as present with zero lateness.
func ClassifyCheckIn(actual, expected schedule.TimeOfDay, graceMinutes int) (attendance.TypeAssistance, int) {
	delta := int(actual) - int(expected)
	if delta <= graceMinutes*60 {
		return attendance.TypePresent, 0
	}
	return attendance.TypeLate, delta
}

// WorkedDuration carries the derived duration figures for a completed day.
type WorkedDuration struct {
	WorkedSeconds   int
	AdjustedSeconds int
	OvertimeSeconds int
}

// ComputeWorkedDuration derives the duration figures at check-out. actualIn
// must already be expressed in the tenant's timezone so its wall-clock time
// lines up with the window.
//
// Worked time is the raw span between the two timestamps. Adjusted time caps
// it at the scheduled span minus any late arrival, then deducts declared
// permission time. Overtime is whatever exceeds the scheduled span.
func ComputeWorkedDuration(actualIn, actualOut time.Time, window schedule.Window, permissionSeconds int) WorkedDuration {
	worked := int(actualOut.Sub(actualIn).Seconds())
	if worked < 0 {
		worked = 0
	}

	span := window.SpanSeconds()

	lateDelay := int(schedule.TimeOfDayFromTime(actualIn)) - int(window.CheckIn)
	if lateDelay < 0 {
		lateDelay = 0
	}

	adjusted := worked
	if limit := span - lateDelay; adjusted > limit {
		adjusted = limit
	}
	adjusted -= permissionSeconds
	if adjusted < 0 {
		adjusted = 0
	}

	overtime := worked - span
	if overtime < 0 {
		overtime = 0
	}

	return WorkedDuration{
		WorkedSeconds:   worked,
		AdjustedSeconds: adjusted,
		OvertimeSeconds: overtime,
	}
}
