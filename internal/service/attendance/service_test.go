package attendance

import (
	"context"
	"testing"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttendanceService(attRepo *fakeAttendanceRepo, resolver *fakeResolver) *AttendanceServiceImpl {
	users := &fakeUserRepo{users: map[string]user.User{
		"user-1":       {ID: "user-1", CompanyID: "co-1", ScheduleID: strPtr("sched-1"), Active: true},
		"user-nosched": {ID: "user-nosched", CompanyID: "co-1", Active: true},
	}}
	schedules := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{
		"sched-1": {ID: "sched-1", CompanyID: "co-1", GraceMinutes: 5, Active: true},
	}}
	return NewAttendanceService(nil, attRepo, users, schedules, &fakeCompanyRepo{timezone: "UTC"}, resolver)
}

func TestCheckIn_SecondCheckInSameDayConflicts(t *testing.T) {
	attRepo := &fakeAttendanceRepo{}
	resolver := &fakeResolver{window: override.EffectiveWindow{
		Window: schedule.Window{CheckIn: 0, CheckOut: 86399},
		Source: override.SourceSchedule,
	}}
	svc := newTestAttendanceService(attRepo, resolver)
	req := attendance.CheckInRequest{UserID: "user-1", CompanyID: "co-1"}

	first, err := svc.CheckIn(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, first.CheckIn)
	require.Len(t, attRepo.records, 1)

	// The same user checking in again on the same day must conflict, never
	// overwrite the existing record.
	_, err = svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, attRepo.records, 1)
}

func TestCheckIn_DayOffRejected(t *testing.T) {
	attRepo := &fakeAttendanceRepo{}
	resolver := &fakeResolver{window: override.EffectiveWindow{
		IsDayOff: true,
		Source:   override.SourceException,
	}}
	svc := newTestAttendanceService(attRepo, resolver)

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{UserID: "user-1", CompanyID: "co-1"})
	assert.ErrorIs(t, err, attendance.ErrDayOff)
	assert.Empty(t, attRepo.records)
}

func TestCheckIn_RequiresAssignedSchedule(t *testing.T) {
	attRepo := &fakeAttendanceRepo{}
	resolver := &fakeResolver{window: override.EffectiveWindow{
		Window: schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600},
		Source: override.SourceSchedule,
	}}
	svc := newTestAttendanceService(attRepo, resolver)

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{UserID: "user-nosched", CompanyID: "co-1"})
	assert.ErrorIs(t, err, user.ErrNoScheduleAssigned)
	assert.Empty(t, attRepo.records)
}
