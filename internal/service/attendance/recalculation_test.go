package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records     []attendance.Attendance
	bulkUpdates []attendance.StatusUpdate
	bulkCalls   int
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.records = append(f.records, att)
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	for _, a := range f.records {
		if a.ID == id && a.CompanyID == companyID {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	for i := range f.records {
		a := f.records[i]
		if a.UserID == userID && a.Date.Equal(date) && a.CompanyID == companyID {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) FindByDateAndSchedule(ctx context.Context, date time.Time, scheduleID string, companyID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.Date.Equal(date) && a.ScheduleID == scheduleID && a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) BulkUpdateStatus(ctx context.Context, updates []attendance.StatusUpdate, companyID string) error {
	f.bulkCalls++
	f.bulkUpdates = append(f.bulkUpdates, updates...)
	return nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, records []attendance.Attendance) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return f.records, int64(len(f.records)), nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string, companyID string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, companyID string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

func (f *fakeUserRepo) SoftDelete(ctx context.Context, id string, companyID string) error {
	return nil
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.Schedule
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	return s, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string, companyID string) (schedule.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		return s, nil
	}
	return schedule.Schedule{}, schedule.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) List(ctx context.Context, companyID string, filter schedule.ScheduleFilter) ([]schedule.Schedule, int64, error) {
	return nil, 0, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, req schedule.UpdateScheduleRequest, companyID string) (schedule.Schedule, error) {
	return schedule.Schedule{}, nil
}

func (f *fakeScheduleRepo) SoftDelete(ctx context.Context, id string, companyID string) error {
	return nil
}

func (f *fakeScheduleRepo) FindActiveByScope(ctx context.Context, workplaceID, positionID *string, companyID string) (*schedule.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ListActiveIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	ids := make([]string, 0, len(f.schedules))
	for id := range f.schedules {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeScheduleRepo) ListActiveIDsByWorkplace(ctx context.Context, workplaceID string, companyID string) ([]string, error) {
	return f.ListActiveIDsByCompany(ctx, companyID)
}

func (f *fakeScheduleRepo) ListActiveIDsByPosition(ctx context.Context, positionID string, companyID string) ([]string, error) {
	return f.ListActiveIDsByCompany(ctx, companyID)
}

type fakeCompanyRepo struct {
	timezone string
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (company.Company, error) {
	return c, nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	return company.Company{ID: id, Timezone: f.timezone}, nil
}

func (f *fakeCompanyRepo) List(ctx context.Context) ([]company.Company, error) { return nil, nil }

func (f *fakeCompanyRepo) Update(ctx context.Context, c company.Company) error { return nil }

func (f *fakeCompanyRepo) SoftDelete(ctx context.Context, id string) error { return nil }

func (f *fakeCompanyRepo) GetTimezone(ctx context.Context, id string) (string, error) {
	return f.timezone, nil
}

type fakeResolver struct {
	window override.EffectiveWindow
	err    error
}

func (f *fakeResolver) ResolveEffectiveWindow(ctx context.Context, ref override.EntityRef, date time.Time) (override.EffectiveWindow, error) {
	if f.err != nil {
		return override.EffectiveWindow{}, f.err
	}
	return f.window, nil
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func newTestCoordinator(attRepo *fakeAttendanceRepo, resolver *fakeResolver) *CoordinatorImpl {
	users := &fakeUserRepo{users: map[string]user.User{
		"user-1": {ID: "user-1", CompanyID: "co-1", ScheduleID: strPtr("sched-1"), Active: true},
		"user-2": {ID: "user-2", CompanyID: "co-1", ScheduleID: strPtr("sched-1"), Active: true},
	}}
	schedules := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{
		"sched-1": {ID: "sched-1", CompanyID: "co-1", GraceMinutes: 5, Active: true},
	}}
	return NewCoordinator(attRepo, users, schedules, &fakeCompanyRepo{timezone: "UTC"}, resolver)
}

func TestRecalculateRange_ReclassifiesLateToPresent(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, time.March, 2, 8, 10, 0, 0, time.UTC)

	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{{
		ID:             "att-1",
		UserID:         "user-1",
		CompanyID:      "co-1",
		ScheduleID:     "sched-1",
		Date:           day,
		CheckIn:        timePtr(checkIn),
		TypeAssistance: attendance.TypeLate,
		LateSeconds:    intPtr(600),
	}}}

	// The new window starts at 09:00, so the 08:10 check-in is now early.
	resolver := &fakeResolver{window: override.EffectiveWindow{
		Window: schedule.Window{CheckIn: 9 * 3600, CheckOut: 18 * 3600},
		Source: override.SourceChange,
	}}

	c := newTestCoordinator(attRepo, resolver)
	scope := override.Scope{Kind: override.ScopeSchedule, EntityID: "sched-1"}

	report, err := c.RecalculateRange(context.Background(), scope, day, day, "co-1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, []string{"att-1"}, report.Updated)
	assert.Empty(t, report.Skipped)

	require.Len(t, attRepo.bulkUpdates, 1)
	assert.Equal(t, attendance.TypePresent, attRepo.bulkUpdates[0].TypeAssistance)
	assert.Equal(t, 0, attRepo.bulkUpdates[0].LateSeconds)
}

func TestRecalculateRange_SkipsMissingCheckInAndManualStatuses(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		{
			ID:             "att-no-checkin",
			UserID:         "user-1",
			CompanyID:      "co-1",
			ScheduleID:     "sched-1",
			Date:           day,
			TypeAssistance: attendance.TypePresent,
		},
		{
			ID:             "att-vacation",
			UserID:         "user-2",
			CompanyID:      "co-1",
			ScheduleID:     "sched-1",
			Date:           day,
			TypeAssistance: attendance.TypeVacation,
		},
	}}

	resolver := &fakeResolver{window: override.EffectiveWindow{
		Window: schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600},
		Source: override.SourceSchedule,
	}}

	c := newTestCoordinator(attRepo, resolver)
	scope := override.Scope{Kind: override.ScopeSchedule, EntityID: "sched-1"}

	report, err := c.RecalculateRange(context.Background(), scope, day, day, "co-1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Empty(t, report.Updated)
	// The vacation record is passed over silently; only the missing check-in
	// shows up as skipped.
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "att-no-checkin", report.Skipped[0].AttendanceID)
	assert.Equal(t, 0, attRepo.bulkCalls)
}

func TestRecalculateRange_SkipsWhenDateBecomesDayOff(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{{
		ID:             "att-1",
		UserID:         "user-1",
		CompanyID:      "co-1",
		ScheduleID:     "sched-1",
		Date:           day,
		CheckIn:        timePtr(checkIn),
		TypeAssistance: attendance.TypePresent,
	}}}

	resolver := &fakeResolver{window: override.EffectiveWindow{
		IsDayOff: true,
		Source:   override.SourceException,
	}}

	c := newTestCoordinator(attRepo, resolver)
	scope := override.Scope{Kind: override.ScopeUser, EntityID: "user-1"}

	report, err := c.RecalculateRange(context.Background(), scope, day, day, "co-1")
	require.NoError(t, err)

	assert.Empty(t, report.Updated)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "att-1", report.Skipped[0].AttendanceID)
	assert.Equal(t, 0, attRepo.bulkCalls)
}

func TestRecalculateRange_NoUpdateWhenClassificationUnchanged(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{{
		ID:             "att-1",
		UserID:         "user-1",
		CompanyID:      "co-1",
		ScheduleID:     "sched-1",
		Date:           day,
		CheckIn:        timePtr(checkIn),
		TypeAssistance: attendance.TypePresent,
		LateSeconds:    intPtr(0),
	}}}

	resolver := &fakeResolver{window: override.EffectiveWindow{
		Window: schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600},
		Source: override.SourceSchedule,
	}}

	c := newTestCoordinator(attRepo, resolver)
	scope := override.Scope{Kind: override.ScopeSchedule, EntityID: "sched-1"}

	report, err := c.RecalculateRange(context.Background(), scope, day, day, "co-1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Total)
	assert.Empty(t, report.Updated)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, 0, attRepo.bulkCalls)
}
