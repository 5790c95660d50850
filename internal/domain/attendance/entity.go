package attendance

import (
	"fmt"
	"time"
)

// TypeAssistance classifies the outcome of one day's attendance.
type TypeAssistance string

const (
	TypePresent            TypeAssistance = "PRESENT"
	TypeLate               TypeAssistance = "LATE"
	TypeAbsent             TypeAssistance = "ABSENT"
	TypeEarlyExit          TypeAssistance = "EARLY_EXIT"
	TypePermissionHours    TypeAssistance = "PERMISSION_HOURS"
	TypeVacation           TypeAssistance = "VACATION"
	TypeMedicalLeave       TypeAssistance = "MEDICAL_LEAVE"
	TypeJustifiedAbsence   TypeAssistance = "JUSTIFIED_ABSENCE"
	TypeInjustifiedAbsence TypeAssistance = "INJUSTIFIED_ABSENCE"
	TypeOther              TypeAssistance = "OTHER"
)

var TypeAssistanceValues = []string{
	string(TypePresent),
	string(TypeLate),
	string(TypeAbsent),
	string(TypeEarlyExit),
	string(TypePermissionHours),
	string(TypeVacation),
	string(TypeMedicalLeave),
	string(TypeJustifiedAbsence),
	string(TypeInjustifiedAbsence),
	string(TypeOther),
}

// Attendance is the stored outcome of one user's day: raw UTC timestamps plus
// the derived classification and duration figures. One record exists per
// (user, date); the database enforces that with a unique constraint.
type Attendance struct {
	ID         string
	UserID     string
	CompanyID  string
	ScheduleID string
	Date       time.Time

	CheckIn  *time.Time
	CheckOut *time.Time

	TypeAssistance  TypeAssistance
	LateSeconds     *int
	WorkedSeconds   *int
	AdjustedSeconds *int
	OvertimeSeconds *int

	// Declared permission duration, deducted from adjusted worked time.
	PermissionSeconds *int

	// Location metadata is pass-through; the engine never interprets it.
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	UserName *string
}

// StatusUpdate is one staged reclassification produced by the recalculation
// coordinator and persisted as a single batch.
type StatusUpdate struct {
	ID             string
	TypeAssistance TypeAssistance
	LateSeconds    int
}

// FormatSeconds renders a duration in whole seconds as HH:MM:SS.
func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
