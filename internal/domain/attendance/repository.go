package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Every
// method takes a companyID to keep tenants isolated at the query level.
type AttendanceRepository interface {
	// Create inserts a record. The (user_id, date) unique constraint makes
	// concurrent check-in and the absence batch mutually safe; a violation
	// surfaces as ErrAlreadyCheckedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// FindByUserAndDate returns nil when no record exists for the day.
	FindByUserAndDate(ctx context.Context, userID string, date time.Time, companyID string) (*Attendance, error)

	// FindByDateAndSchedule fetches the records an override mutation affects.
	FindByDateAndSchedule(ctx context.Context, date time.Time, scheduleID string, companyID string) ([]Attendance, error)

	Update(ctx context.Context, att Attendance) error

	// BulkUpdateStatus persists staged reclassifications atomically.
	BulkUpdateStatus(ctx context.Context, updates []StatusUpdate, companyID string) error

	BulkCreateAbsences(ctx context.Context, records []Attendance) error

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
	GetMyAttendance(ctx context.Context, userID string, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
}
