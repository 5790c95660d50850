package attendance

import (
	"context"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	GetAttendance(ctx context.Context, id string, companyID string) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetMyAttendance(ctx context.Context, userID string, filter AttendanceFilter) (ListAttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}

// RecalculationCoordinator reclassifies stored attendance after an override
// mutation. Per-record failures are collected into the report, never aborting
// the batch, and a report error never blocks the triggering mutation.
type RecalculationCoordinator interface {
	RecalculateRange(ctx context.Context, scope override.Scope, startDate, endDate time.Time, companyID string) (RecalculationReport, error)
}
