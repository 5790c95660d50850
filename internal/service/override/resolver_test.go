package override

import (
	"context"
	"testing"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type fakeChangeRepo struct {
	changes []override.ScheduleChange
}

func (f *fakeChangeRepo) Create(ctx context.Context, change override.ScheduleChange) (override.ScheduleChange, error) {
	f.changes = append(f.changes, change)
	return change, nil
}

func (f *fakeChangeRepo) GetByID(ctx context.Context, id string, companyID string) (override.ScheduleChange, error) {
	for _, c := range f.changes {
		if c.ID == id && c.CompanyID == companyID {
			return c, nil
		}
	}
	return override.ScheduleChange{}, override.ErrChangeNotFound
}

func (f *fakeChangeRepo) Update(ctx context.Context, change override.ScheduleChange) error {
	return nil
}

func (f *fakeChangeRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func (f *fakeChangeRepo) List(ctx context.Context, companyID string, filter override.OverrideFilter) ([]override.ScheduleChange, int64, error) {
	return f.changes, int64(len(f.changes)), nil
}

func (f *fakeChangeRepo) FindByScopeAndDate(ctx context.Context, scope override.Scope, date time.Time, companyID string) (*override.ScheduleChange, error) {
	for i := range f.changes {
		c := f.changes[i]
		if c.Scope == scope && c.ChangeDate.Equal(date) && c.CompanyID == companyID {
			return &c, nil
		}
	}
	return nil, nil
}

type fakeExceptionRepo struct {
	exceptions []override.ScheduleException
}

func (f *fakeExceptionRepo) Create(ctx context.Context, exc override.ScheduleException) (override.ScheduleException, error) {
	f.exceptions = append(f.exceptions, exc)
	return exc, nil
}

func (f *fakeExceptionRepo) GetByID(ctx context.Context, id string, companyID string) (override.ScheduleException, error) {
	for _, e := range f.exceptions {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return override.ScheduleException{}, override.ErrExceptionNotFound
}

func (f *fakeExceptionRepo) Update(ctx context.Context, exc override.ScheduleException) error {
	return nil
}

func (f *fakeExceptionRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func (f *fakeExceptionRepo) List(ctx context.Context, companyID string, filter override.OverrideFilter) ([]override.ScheduleException, int64, error) {
	return f.exceptions, int64(len(f.exceptions)), nil
}

func (f *fakeExceptionRepo) FindByScopeAndDate(ctx context.Context, scope override.Scope, date time.Time, companyID string) (*override.ScheduleException, error) {
	for i := range f.exceptions {
		e := f.exceptions[i]
		if e.Scope == scope && e.CompanyID == companyID && e.Covers(date) {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeExceptionRepo) FindHolidayByDate(ctx context.Context, companyID string, date time.Time) (*override.ScheduleException, error) {
	for i := range f.exceptions {
		e := f.exceptions[i]
		if e.Scope.Kind != override.ScopeHoliday || !e.Covers(date) {
			continue
		}
		if e.Scope.EntityID == companyID || e.Scope.EntityID == "" {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeExceptionRepo) FindOverlapping(ctx context.Context, scope override.Scope, startDate, endDate time.Time, excludeID *string, companyID string) ([]override.ScheduleException, error) {
	var out []override.ScheduleException
	for _, e := range f.exceptions {
		if e.Scope != scope || e.CompanyID != companyID {
			continue
		}
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if IntervalsOverlap(e.StartDate, e.EndDate, startDate, endDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	window schedule.Window
	err    error
}

func (f *fakeCatalog) ResolveBaseWindow(ctx context.Context, scheduleID string, date time.Time, companyID string) (schedule.Window, error) {
	if f.err != nil {
		return schedule.Window{}, f.err
	}
	return f.window, nil
}

func timeOfDayPtr(t schedule.TimeOfDay) *schedule.TimeOfDay { return &t }

var testRef = override.EntityRef{
	UserID:      "user-1",
	ScheduleID:  "sched-1",
	WorkplaceID: "wp-1",
	PositionID:  "pos-1",
	CompanyID:   "co-1",
}

var baseWindow = schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600}

func TestResolver_FallsBackToBaseSchedule(t *testing.T) {
	r := NewResolver(&fakeChangeRepo{}, &fakeExceptionRepo{}, &fakeCatalog{window: baseWindow})

	got, err := r.ResolveEffectiveWindow(context.Background(), testRef, utcDate(2026, time.March, 2))
	require.NoError(t, err)
	assert.Equal(t, override.SourceSchedule, got.Source)
	assert.Equal(t, baseWindow, got.Window)
	assert.False(t, got.IsDayOff)
}

func TestResolver_NoScheduleForDay(t *testing.T) {
	r := NewResolver(&fakeChangeRepo{}, &fakeExceptionRepo{}, &fakeCatalog{err: schedule.ErrNoScheduleForDay})

	_, err := r.ResolveEffectiveWindow(context.Background(), testRef, utcDate(2026, time.March, 7))
	assert.ErrorIs(t, err, schedule.ErrNoScheduleForDay)
}

func TestResolver_ChangeBeatsBaseSchedule(t *testing.T) {
	day := utcDate(2026, time.March, 2)
	changeRepo := &fakeChangeRepo{changes: []override.ScheduleChange{{
		ID:          "chg-1",
		CompanyID:   "co-1",
		Scope:       override.Scope{Kind: override.ScopeCompany, EntityID: "co-1"},
		ChangeDate:  day,
		NewCheckIn:  9 * 3600,
		NewCheckOut: 18 * 3600,
		Reason:      "late opening",
	}}}

	r := NewResolver(changeRepo, &fakeExceptionRepo{}, &fakeCatalog{window: baseWindow})

	got, err := r.ResolveEffectiveWindow(context.Background(), testRef, day)
	require.NoError(t, err)
	assert.Equal(t, override.SourceChange, got.Source)
	assert.Equal(t, schedule.TimeOfDay(9*3600), got.CheckIn)
	assert.Equal(t, schedule.TimeOfDay(18*3600), got.CheckOut)
}

func TestResolver_ScheduleChangeBeatsCompanyChange(t *testing.T) {
	day := utcDate(2026, time.March, 2)
	changeRepo := &fakeChangeRepo{changes: []override.ScheduleChange{
		{
			ID:          "chg-company",
			CompanyID:   "co-1",
			Scope:       override.Scope{Kind: override.ScopeCompany, EntityID: "co-1"},
			ChangeDate:  day,
			NewCheckIn:  10 * 3600,
			NewCheckOut: 19 * 3600,
		},
		{
			ID:          "chg-schedule",
			CompanyID:   "co-1",
			Scope:       override.Scope{Kind: override.ScopeSchedule, EntityID: "sched-1"},
			ChangeDate:  day,
			NewCheckIn:  7 * 3600,
			NewCheckOut: 16 * 3600,
		},
	}}

	r := NewResolver(changeRepo, &fakeExceptionRepo{}, &fakeCatalog{window: baseWindow})

	got, err := r.ResolveEffectiveWindow(context.Background(), testRef, day)
	require.NoError(t, err)
	assert.Equal(t, schedule.TimeOfDay(7*3600), got.CheckIn)
}

func TestResolver_ExceptionBeatsChange(t *testing.T) {
	day := utcDate(2026, time.March, 2)
	changeRepo := &fakeChangeRepo{changes: []override.ScheduleChange{{
		ID:          "chg-1",
		CompanyID:   "co-1",
		Scope:       override.Scope{Kind: override.ScopeSchedule, EntityID: "sched-1"},
		ChangeDate:  day,
		NewCheckIn:  9 * 3600,
		NewCheckOut: 18 * 3600,
	}}}
	excRepo := &fakeExceptionRepo{exceptions: []override.ScheduleException{{
		ID:        "exc-1",
		CompanyID: "co-1",
		Scope:     override.Scope{Kind: override.ScopeUser, EntityID: "user-1"},
		StartDate: day,
		EndDate:   day,
		IsDayOff:  true,
		Reason:    "annual leave",
	}}}

	r := NewResolver(changeRepo, excRepo, &fakeCatalog{window: baseWindow})

	got, err := r.ResolveEffectiveWindow(context.Background(), testRef, day)
	require.NoError(t, err)
	assert.Equal(t, override.SourceException, got.Source)
	assert.True(t, got.IsDayOff)
	assert.Equal(t, "annual leave", got.Reason)
}

func TestResolver_UserExceptionBeatsCompanyException(t *testing.T) {
	day := utcDate(2026, time.March, 2)
	excRepo := &fakeExceptionRepo{exceptions: []override.ScheduleException{
		{
			ID:        "exc-company",
			CompanyID: "co-1",
			Scope:     override.Scope{Kind: override.ScopeCompany, EntityID: "co-1"},
			StartDate: day,
			EndDate:   day,
			IsDayOff:  false,
			CheckIn:   timeOfDayPtr(10 * 3600),
			CheckOut:  timeOfDayPtr(15 * 3600),
			Reason:    "short company day",
		},
		{
			ID:        "exc-user",
			CompanyID: "co-1",
			Scope:     override.Scope{Kind: override.ScopeUser, EntityID: "user-1"},
			StartDate: day,
			EndDate:   day,
			IsDayOff:  true,
			Reason:    "medical leave",
		},
	}}

	r := NewResolver(&fakeChangeRepo{}, excRepo, &fakeCatalog{window: baseWindow})

	got, err := r.ResolveEffectiveWindow(context.Background(), testRef, day)
	require.NoError(t, err)
	assert.True(t, got.IsDayOff)
	assert.Equal(t, "medical leave", got.Reason)
}

func TestResolver_ExceptionCoversRangeMiddle(t *testing.T) {
	excRepo := &fakeExceptionRepo{exceptions: []override.ScheduleException{{
		ID:        "exc-1",
		CompanyID: "co-1",
		Scope:     override.Scope{Kind: override.ScopeUser, EntityID: "user-1"},
		StartDate: utcDate(2026, time.March, 2),
		EndDate:   utcDate(2026, time.March, 6),
		IsDayOff:  true,
	}}}

	r := NewResolver(&fakeChangeRepo{}, excRepo, &fakeCatalog{window: baseWindow})

	got, err := r.ResolveEffectiveWindow(context.Background(), testRef, utcDate(2026, time.March, 4))
	require.NoError(t, err)
	assert.True(t, got.IsDayOff)

	// The day after the span ends falls through to the base schedule.
	got, err = r.ResolveEffectiveWindow(context.Background(), testRef, utcDate(2026, time.March, 7))
	require.NoError(t, err)
	assert.Equal(t, override.SourceSchedule, got.Source)
}

func TestResolver_HolidayAppliesWhenNoScopedException(t *testing.T) {
	day := utcDate(2026, time.May, 1)
	excRepo := &fakeExceptionRepo{exceptions: []override.ScheduleException{{
		ID:        "exc-holiday",
		CompanyID: "co-1",
		Scope:     override.Scope{Kind: override.ScopeHoliday, EntityID: ""},
		StartDate: day,
		EndDate:   day,
		IsDayOff:  true,
		Reason:    "labour day",
	}}}

	r := NewResolver(&fakeChangeRepo{}, excRepo, &fakeCatalog{window: baseWindow})

	got, err := r.ResolveEffectiveWindow(context.Background(), testRef, day)
	require.NoError(t, err)
	assert.True(t, got.IsDayOff)
	assert.Equal(t, "labour day", got.Reason)
}

func TestResolver_Deterministic(t *testing.T) {
	day := utcDate(2026, time.March, 2)
	changeRepo := &fakeChangeRepo{changes: []override.ScheduleChange{{
		ID:          "chg-1",
		CompanyID:   "co-1",
		Scope:       override.Scope{Kind: override.ScopeSchedule, EntityID: "sched-1"},
		ChangeDate:  day,
		NewCheckIn:  9 * 3600,
		NewCheckOut: 18 * 3600,
	}}}

	r := NewResolver(changeRepo, &fakeExceptionRepo{}, &fakeCatalog{window: baseWindow})

	first, err := r.ResolveEffectiveWindow(context.Background(), testRef, day)
	require.NoError(t, err)
	second, err := r.ResolveEffectiveWindow(context.Background(), testRef, day)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
