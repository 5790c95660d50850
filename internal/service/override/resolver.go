package override

import (
	"context"
	"fmt"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
)

// ResolverImpl resolves the effective working window for an entity and date.
//
// Exceptions always win over changes: an exception is planned absence or
// leave, while a change only moves the working hours of someone still
// expected to work. Within each layer the more individually-targeted scope
// dominates the broader one.
type ResolverImpl struct {
	changeRepo    override.ScheduleChangeRepository
	exceptionRepo override.ScheduleExceptionRepository
	catalog       schedule.Catalog
}

func NewResolver(
	changeRepo override.ScheduleChangeRepository,
	exceptionRepo override.ScheduleExceptionRepository,
	catalog schedule.Catalog,
) *ResolverImpl {
	return &ResolverImpl{
		changeRepo:    changeRepo,
		exceptionRepo: exceptionRepo,
		catalog:       catalog,
	}
}

// ResolveEffectiveWindow implements override.Resolver. Read-only: identical
// calls against an unchanged store return identical results.
func (r *ResolverImpl) ResolveEffectiveWindow(ctx context.Context, ref override.EntityRef, date time.Time) (override.EffectiveWindow, error) {
	// Layer 1: exceptions, most specific scope first. Schedule-scoped
	// exceptions do not exist; an exception targets people, not timetables.
	exceptionScopes := []override.Scope{
		{Kind: override.ScopeUser, EntityID: ref.UserID},
		{Kind: override.ScopeWorkplace, EntityID: ref.WorkplaceID},
		{Kind: override.ScopePosition, EntityID: ref.PositionID},
		{Kind: override.ScopeCompany, EntityID: ref.CompanyID},
	}

	for _, scope := range exceptionScopes {
		if scope.EntityID == "" {
			continue
		}
		exc, err := r.exceptionRepo.FindByScopeAndDate(ctx, scope, date, ref.CompanyID)
		if err != nil {
			return override.EffectiveWindow{}, fmt.Errorf("failed to find exception for scope %s: %w", scope.Kind, err)
		}
		if exc != nil {
			return windowFromException(*exc), nil
		}
	}

	holiday, err := r.exceptionRepo.FindHolidayByDate(ctx, ref.CompanyID, date)
	if err != nil {
		return override.EffectiveWindow{}, fmt.Errorf("failed to find holiday: %w", err)
	}
	if holiday != nil {
		return windowFromException(*holiday), nil
	}

	// Layer 2: single-date changes. Work is still expected; only the times
	// move. A change pinned to the schedule itself beats organizational scopes.
	changeScopes := []override.Scope{
		{Kind: override.ScopeSchedule, EntityID: ref.ScheduleID},
		{Kind: override.ScopePosition, EntityID: ref.PositionID},
		{Kind: override.ScopeWorkplace, EntityID: ref.WorkplaceID},
		{Kind: override.ScopeCompany, EntityID: ref.CompanyID},
	}

	for _, scope := range changeScopes {
		if scope.EntityID == "" {
			continue
		}
		change, err := r.changeRepo.FindByScopeAndDate(ctx, scope, date, ref.CompanyID)
		if err != nil {
			return override.EffectiveWindow{}, fmt.Errorf("failed to find change for scope %s: %w", scope.Kind, err)
		}
		if change != nil {
			return override.EffectiveWindow{
				Window: schedule.Window{
					CheckIn:    change.NewCheckIn,
					CheckOut:   change.NewCheckOut,
					NightShift: change.NightShift,
				},
				Source: override.SourceChange,
				Reason: change.Reason,
			}, nil
		}
	}

	// Layer 3: the weekly recurring base window.
	window, err := r.catalog.ResolveBaseWindow(ctx, ref.ScheduleID, date, ref.CompanyID)
	if err != nil {
		return override.EffectiveWindow{}, err
	}

	return override.EffectiveWindow{
		Window: window,
		Source: override.SourceSchedule,
	}, nil
}

func windowFromException(exc override.ScheduleException) override.EffectiveWindow {
	w := override.EffectiveWindow{
		IsDayOff: exc.IsDayOff,
		Source:   override.SourceException,
		Reason:   exc.Reason,
	}
	if !exc.IsDayOff && exc.CheckIn != nil && exc.CheckOut != nil {
		w.Window = schedule.Window{CheckIn: *exc.CheckIn, CheckOut: *exc.CheckOut}
	}
	return w
}
