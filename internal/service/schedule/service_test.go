package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	schedules map[string]schedule.Schedule
	active    *schedule.Schedule
	created   []schedule.Schedule
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	s.ID = fmt.Sprintf("sched-%d", len(f.created)+1)
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string, companyID string) (schedule.Schedule, error) {
	if s, ok := f.schedules[id]; ok && s.CompanyID == companyID {
		return s, nil
	}
	return schedule.Schedule{}, schedule.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) List(ctx context.Context, companyID string, filter schedule.ScheduleFilter) ([]schedule.Schedule, int64, error) {
	var out []schedule.Schedule
	for _, s := range f.schedules {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, req schedule.UpdateScheduleRequest, companyID string) (schedule.Schedule, error) {
	s, ok := f.schedules[req.ID]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.GraceMinutes != nil {
		s.GraceMinutes = *req.GraceMinutes
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
	f.schedules[req.ID] = s
	return s, nil
}

func (f *fakeScheduleRepo) SoftDelete(ctx context.Context, id string, companyID string) error {
	if _, ok := f.schedules[id]; !ok {
		return schedule.ErrScheduleNotFound
	}
	delete(f.schedules, id)
	return nil
}

func (f *fakeScheduleRepo) FindActiveByScope(ctx context.Context, workplaceID, positionID *string, companyID string) (*schedule.Schedule, error) {
	return f.active, nil
}

func (f *fakeScheduleRepo) ListActiveIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ListActiveIDsByWorkplace(ctx context.Context, workplaceID string, companyID string) ([]string, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ListActiveIDsByPosition(ctx context.Context, positionID string, companyID string) ([]string, error) {
	return nil, nil
}

type fakeRangeRepo struct {
	ranges []schedule.ScheduleRange
}

func (f *fakeRangeRepo) Create(ctx context.Context, r schedule.ScheduleRange, companyID string) (schedule.ScheduleRange, error) {
	r.ID = fmt.Sprintf("range-%d", len(f.ranges)+1)
	f.ranges = append(f.ranges, r)
	return r, nil
}

func (f *fakeRangeRepo) GetByID(ctx context.Context, id string, companyID string) (schedule.ScheduleRange, error) {
	for _, r := range f.ranges {
		if r.ID == id {
			return r, nil
		}
	}
	return schedule.ScheduleRange{}, schedule.ErrScheduleRangeNotFound
}

func (f *fakeRangeRepo) GetByScheduleID(ctx context.Context, scheduleID string, companyID string) ([]schedule.ScheduleRange, error) {
	var out []schedule.ScheduleRange
	for _, r := range f.ranges {
		if r.ScheduleID == scheduleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRangeRepo) Update(ctx context.Context, req schedule.UpdateScheduleRangeRequest, companyID string) error {
	return nil
}

func (f *fakeRangeRepo) Delete(ctx context.Context, id string, companyID string) error {
	for i, r := range f.ranges {
		if r.ID == id {
			f.ranges = append(f.ranges[:i], f.ranges[i+1:]...)
			return nil
		}
	}
	return schedule.ErrScheduleRangeNotFound
}

func mustTimeOfDay(t *testing.T, value string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(value)
	require.NoError(t, err)
	return tod
}

func weekdayRange(t *testing.T, scheduleID string) schedule.ScheduleRange {
	return schedule.ScheduleRange{
		ID:         "range-mon-fri",
		ScheduleID: scheduleID,
		StartDay:   1,
		EndDay:     5,
		CheckIn:    mustTimeOfDay(t, "08:00:00"),
		CheckOut:   mustTimeOfDay(t, "17:00:00"),
	}
}

func TestResolveBaseWindow(t *testing.T) {
	rangeRepo := &fakeRangeRepo{ranges: []schedule.ScheduleRange{weekdayRange(t, "sched-1")}}
	svc := NewScheduleService(nil, &fakeScheduleRepo{}, rangeRepo)
	ctx := context.Background()

	// 2026-03-04 is a Wednesday.
	window, err := svc.ResolveBaseWindow(ctx, "sched-1", time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC), "co-1")
	require.NoError(t, err)
	assert.Equal(t, mustTimeOfDay(t, "08:00:00"), window.CheckIn)
	assert.Equal(t, mustTimeOfDay(t, "17:00:00"), window.CheckOut)
	assert.False(t, window.NightShift)

	// 2026-03-07 is a Saturday, outside the Monday..Friday range.
	_, err = svc.ResolveBaseWindow(ctx, "sched-1", time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), "co-1")
	assert.ErrorIs(t, err, schedule.ErrNoScheduleForDay)
}

func TestCreateSchedule_DefaultsGraceToFiveMinutes(t *testing.T) {
	repo := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{}}
	svc := NewScheduleService(nil, repo, &fakeRangeRepo{})

	resp, err := svc.CreateSchedule(context.Background(), schedule.CreateScheduleRequest{
		Name:      "Office hours",
		CompanyID: "co-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.GraceMinutes)
	assert.True(t, resp.Active)
}

func TestCreateSchedule_RejectsDuplicateActiveScope(t *testing.T) {
	wpID := "wp-1"
	existing := schedule.Schedule{ID: "sched-1", CompanyID: "co-1", WorkplaceID: &wpID, Active: true}
	repo := &fakeScheduleRepo{active: &existing}
	svc := NewScheduleService(nil, repo, &fakeRangeRepo{})

	_, err := svc.CreateSchedule(context.Background(), schedule.CreateScheduleRequest{
		Name:        "Second office hours",
		WorkplaceID: &wpID,
		CompanyID:   "co-1",
	})
	assert.ErrorIs(t, err, schedule.ErrDuplicateActiveSchedule)
}

func TestCreateRange_RejectsOverlappingWeekday(t *testing.T) {
	repo := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{
		"sched-1": {ID: "sched-1", CompanyID: "co-1", Active: true},
	}}
	rangeRepo := &fakeRangeRepo{ranges: []schedule.ScheduleRange{weekdayRange(t, "sched-1")}}
	svc := NewScheduleService(nil, repo, rangeRepo)

	startDay, endDay := 3, 6
	_, err := svc.CreateRange(context.Background(), schedule.CreateScheduleRangeRequest{
		ScheduleID: "sched-1",
		StartDay:   &startDay,
		EndDay:     &endDay,
		CheckIn:    "09:00:00",
		CheckOut:   "13:00:00",
		CompanyID:  "co-1",
	})
	assert.ErrorIs(t, err, schedule.ErrOverlappingRange)
}

func TestCreateRange_AllowsDisjointWeekday(t *testing.T) {
	repo := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{
		"sched-1": {ID: "sched-1", CompanyID: "co-1", Active: true},
	}}
	rangeRepo := &fakeRangeRepo{ranges: []schedule.ScheduleRange{weekdayRange(t, "sched-1")}}
	svc := NewScheduleService(nil, repo, rangeRepo)

	saturday := 6
	resp, err := svc.CreateRange(context.Background(), schedule.CreateScheduleRangeRequest{
		ScheduleID: "sched-1",
		StartDay:   &saturday,
		EndDay:     &saturday,
		CheckIn:    "09:00:00",
		CheckOut:   "13:00:00",
		CompanyID:  "co-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.StartDay)
	assert.Equal(t, "09:00:00", resp.CheckIn)
}

func TestCreateRange_RejectsWrapAroundWeek(t *testing.T) {
	repo := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{
		"sched-1": {ID: "sched-1", CompanyID: "co-1", Active: true},
	}}
	svc := NewScheduleService(nil, repo, &fakeRangeRepo{})

	friday, monday := 5, 1
	_, err := svc.CreateRange(context.Background(), schedule.CreateScheduleRangeRequest{
		ScheduleID: "sched-1",
		StartDay:   &friday,
		EndDay:     &monday,
		CheckIn:    "08:00:00",
		CheckOut:   "17:00:00",
		CompanyID:  "co-1",
	})
	assert.Error(t, err)
}

func TestUpdateRange_RejectsOverlappingWeekday(t *testing.T) {
	monWed := schedule.ScheduleRange{
		ID:         "range-mon-wed",
		ScheduleID: "sched-1",
		StartDay:   1,
		EndDay:     3,
		CheckIn:    mustTimeOfDay(t, "08:00:00"),
		CheckOut:   mustTimeOfDay(t, "17:00:00"),
	}
	thuFri := schedule.ScheduleRange{
		ID:         "range-thu-fri",
		ScheduleID: "sched-1",
		StartDay:   4,
		EndDay:     5,
		CheckIn:    mustTimeOfDay(t, "09:00:00"),
		CheckOut:   mustTimeOfDay(t, "18:00:00"),
	}
	rangeRepo := &fakeRangeRepo{ranges: []schedule.ScheduleRange{monWed, thuFri}}
	svc := NewScheduleService(nil, &fakeScheduleRepo{}, rangeRepo)

	// Moving the Thursday..Friday range back to Tuesday collides with the
	// Monday..Wednesday sibling.
	tuesday := 2
	err := svc.UpdateRange(context.Background(), schedule.UpdateScheduleRangeRequest{
		ID:        "range-thu-fri",
		StartDay:  &tuesday,
		CompanyID: "co-1",
	})
	assert.ErrorIs(t, err, schedule.ErrOverlappingRange)

	// Extending into free days is fine, and a range never collides with its
	// own current span.
	saturday := 6
	err = svc.UpdateRange(context.Background(), schedule.UpdateScheduleRangeRequest{
		ID:        "range-thu-fri",
		EndDay:    &saturday,
		CompanyID: "co-1",
	})
	require.NoError(t, err)
}

func TestUpdateRange_RejectsWrapAroundWeek(t *testing.T) {
	rangeRepo := &fakeRangeRepo{ranges: []schedule.ScheduleRange{weekdayRange(t, "sched-1")}}
	svc := NewScheduleService(nil, &fakeScheduleRepo{}, rangeRepo)

	saturday := 6
	err := svc.UpdateRange(context.Background(), schedule.UpdateScheduleRangeRequest{
		ID:        "range-mon-fri",
		StartDay:  &saturday,
		CompanyID: "co-1",
	})
	assert.ErrorIs(t, err, schedule.ErrWrapAroundRange)
}
