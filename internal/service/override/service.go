package override

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/position"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/workplace"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type OverrideServiceImpl struct {
	db            *database.DB
	changeRepo    override.ScheduleChangeRepository
	exceptionRepo override.ScheduleExceptionRepository
	guard         *OverlapGuard
	coordinator   attendance.RecalculationCoordinator

	scheduleRepo  schedule.ScheduleRepository
	userRepo      user.UserRepository
	workplaceRepo workplace.WorkplaceRepository
	positionRepo  position.PositionRepository
	companyRepo   company.CompanyRepository
}

func NewOverrideService(
	db *database.DB,
	changeRepo override.ScheduleChangeRepository,
	exceptionRepo override.ScheduleExceptionRepository,
	coordinator attendance.RecalculationCoordinator,
	scheduleRepo schedule.ScheduleRepository,
	userRepo user.UserRepository,
	workplaceRepo workplace.WorkplaceRepository,
	positionRepo position.PositionRepository,
	companyRepo company.CompanyRepository,
) *OverrideServiceImpl {
	return &OverrideServiceImpl{
		db:            db,
		changeRepo:    changeRepo,
		exceptionRepo: exceptionRepo,
		guard:         NewOverlapGuard(exceptionRepo),
		coordinator:   coordinator,
		scheduleRepo:  scheduleRepo,
		userRepo:      userRepo,
		workplaceRepo: workplaceRepo,
		positionRepo:  positionRepo,
		companyRepo:   companyRepo,
	}
}

// validateScopeEntity confirms the targeted entity exists, is active and
// belongs to the caller's company before an override may reference it.
func (s *OverrideServiceImpl) validateScopeEntity(ctx context.Context, scope override.Scope, companyID string) error {
	switch scope.Kind {
	case override.ScopeSchedule:
		sched, err := s.scheduleRepo.GetByID(ctx, scope.EntityID, companyID)
		if err != nil || !sched.Active {
			return override.ErrScopeEntityInvalid
		}
	case override.ScopeUser:
		u, err := s.userRepo.GetByID(ctx, scope.EntityID, companyID)
		if err != nil || !u.Active {
			return override.ErrScopeEntityInvalid
		}
	case override.ScopeWorkplace:
		w, err := s.workplaceRepo.GetByID(ctx, scope.EntityID, companyID)
		if err != nil || !w.Active {
			return override.ErrScopeEntityInvalid
		}
	case override.ScopePosition:
		p, err := s.positionRepo.GetByID(ctx, scope.EntityID, companyID)
		if err != nil || !p.Active {
			return override.ErrScopeEntityInvalid
		}
	case override.ScopeCompany:
		if scope.EntityID != companyID {
			return override.ErrScopeEntityInvalid
		}
		if _, err := s.companyRepo.GetByID(ctx, scope.EntityID); err != nil {
			return override.ErrScopeEntityInvalid
		}
	case override.ScopeHoliday:
		// Empty entity id makes the holiday global.
		if scope.EntityID != "" && scope.EntityID != companyID {
			return override.ErrScopeEntityInvalid
		}
	default:
		return override.ErrInvalidScope
	}
	return nil
}

// recalculate re-derives attendance classifications affected by an override
// mutation. Failures are reported, never propagated: a recalculation problem
// must not roll back the admin's mutation.
func (s *OverrideServiceImpl) recalculate(ctx context.Context, scope override.Scope, startDate, endDate time.Time, companyID string) {
	report, err := s.coordinator.RecalculateRange(ctx, scope, startDate, endDate, companyID)
	if err != nil {
		slog.Error("Attendance recalculation failed",
			"scope", string(scope.Kind), "entity_id", scope.EntityID, "error", err)
		return
	}
	if len(report.Skipped) > 0 {
		slog.Warn("Attendance recalculation skipped records",
			"scope", string(scope.Kind), "skipped", len(report.Skipped))
	}
	slog.Info("Attendance recalculated",
		"scope", string(scope.Kind), "total", report.Total, "updated", len(report.Updated))
}

// CreateChange implements override.OverrideService.
func (s *OverrideServiceImpl) CreateChange(ctx context.Context, req override.CreateChangeRequest) (override.ChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return override.ChangeResponse{}, err
	}

	scope := override.Scope{Kind: override.ScopeKind(req.ScopeKind), EntityID: req.EntityID}
	if err := s.validateScopeEntity(ctx, scope, req.CompanyID); err != nil {
		return override.ChangeResponse{}, err
	}

	changeDate, err := override.ParseDate(req.ChangeDate)
	if err != nil {
		return override.ChangeResponse{}, fmt.Errorf("failed to parse change date: %w", err)
	}

	// At most one change per (scope, entity, date).
	existing, err := s.changeRepo.FindByScopeAndDate(ctx, scope, changeDate, req.CompanyID)
	if err != nil {
		return override.ChangeResponse{}, fmt.Errorf("failed to check for duplicate change: %w", err)
	}
	if existing != nil {
		return override.ChangeResponse{}, override.ErrDuplicateChange
	}

	newCheckIn, _ := schedule.ParseTimeOfDay(req.NewCheckIn)
	newCheckOut, _ := schedule.ParseTimeOfDay(req.NewCheckOut)

	created, err := s.changeRepo.Create(ctx, override.ScheduleChange{
		CompanyID:   req.CompanyID,
		Scope:       scope,
		ChangeDate:  changeDate,
		NewCheckIn:  newCheckIn,
		NewCheckOut: newCheckOut,
		NightShift:  req.NightShift,
		Reason:      req.Reason,
	})
	if err != nil {
		return override.ChangeResponse{}, fmt.Errorf("failed to create schedule change: %w", err)
	}

	s.recalculate(ctx, scope, changeDate, changeDate, req.CompanyID)

	return mapChangeToResponse(created), nil
}

// GetChange implements override.OverrideService.
func (s *OverrideServiceImpl) GetChange(ctx context.Context, id string, companyID string) (override.ChangeResponse, error) {
	change, err := s.changeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, override.ErrChangeNotFound) {
			return override.ChangeResponse{}, override.ErrChangeNotFound
		}
		return override.ChangeResponse{}, fmt.Errorf("failed to get schedule change: %w", err)
	}
	return mapChangeToResponse(change), nil
}

// ListChanges implements override.OverrideService.
func (s *OverrideServiceImpl) ListChanges(ctx context.Context, filter override.OverrideFilter) (override.ListChangeResponse, error) {
	if err := filter.Validate(); err != nil {
		return override.ListChangeResponse{}, err
	}

	changes, total, err := s.changeRepo.List(ctx, filter.CompanyID, filter)
	if err != nil {
		return override.ListChangeResponse{}, fmt.Errorf("failed to list schedule changes: %w", err)
	}

	responses := make([]override.ChangeResponse, 0, len(changes))
	for _, c := range changes {
		responses = append(responses, mapChangeToResponse(c))
	}

	return override.ListChangeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Changes:    responses,
	}, nil
}

// UpdateChange implements override.OverrideService.
func (s *OverrideServiceImpl) UpdateChange(ctx context.Context, req override.UpdateChangeRequest) (override.ChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return override.ChangeResponse{}, err
	}

	change, err := s.changeRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, override.ErrChangeNotFound) {
			return override.ChangeResponse{}, override.ErrChangeNotFound
		}
		return override.ChangeResponse{}, fmt.Errorf("failed to get schedule change: %w", err)
	}

	if req.NewCheckIn != nil {
		change.NewCheckIn, _ = schedule.ParseTimeOfDay(*req.NewCheckIn)
	}
	if req.NewCheckOut != nil {
		change.NewCheckOut, _ = schedule.ParseTimeOfDay(*req.NewCheckOut)
	}
	if req.NightShift != nil {
		change.NightShift = *req.NightShift
	}
	if req.Reason != nil {
		change.Reason = *req.Reason
	}
	if !change.NightShift && change.NewCheckOut <= change.NewCheckIn {
		return override.ChangeResponse{}, schedule.ErrCheckOutBeforeCheckIn
	}

	if err := s.changeRepo.Update(ctx, change); err != nil {
		return override.ChangeResponse{}, fmt.Errorf("failed to update schedule change: %w", err)
	}

	s.recalculate(ctx, change.Scope, change.ChangeDate, change.ChangeDate, req.CompanyID)

	return mapChangeToResponse(change), nil
}

// DeleteChange implements override.OverrideService. Attendance on the change
// date is reclassified against the reverted window.
func (s *OverrideServiceImpl) DeleteChange(ctx context.Context, id string, companyID string) error {
	change, err := s.changeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, override.ErrChangeNotFound) {
			return override.ErrChangeNotFound
		}
		return fmt.Errorf("failed to get schedule change: %w", err)
	}

	if err := s.changeRepo.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("failed to delete schedule change: %w", err)
	}

	s.recalculate(ctx, change.Scope, change.ChangeDate, change.ChangeDate, companyID)

	return nil
}

// CreateException implements override.OverrideService.
func (s *OverrideServiceImpl) CreateException(ctx context.Context, req override.CreateExceptionRequest) (override.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return override.ExceptionResponse{}, err
	}

	scope := override.Scope{Kind: override.ScopeKind(req.ScopeKind), EntityID: req.EntityID}
	if err := s.validateScopeEntity(ctx, scope, req.CompanyID); err != nil {
		return override.ExceptionResponse{}, err
	}

	startDate, _ := override.ParseDate(req.StartDate)
	endDate, _ := override.ParseDate(req.EndDate)

	conflict, err := s.guard.HasOverlap(ctx, scope, startDate, endDate, nil, req.CompanyID)
	if err != nil {
		return override.ExceptionResponse{}, err
	}
	if conflict {
		return override.ExceptionResponse{}, override.ErrOverlappingException
	}

	exc := override.ScheduleException{
		CompanyID: req.CompanyID,
		Scope:     scope,
		StartDate: startDate,
		EndDate:   endDate,
		IsDayOff:  req.IsDayOff,
		Reason:    req.Reason,
	}
	if !req.IsDayOff {
		checkIn, _ := schedule.ParseTimeOfDay(*req.CheckIn)
		checkOut, _ := schedule.ParseTimeOfDay(*req.CheckOut)
		exc.CheckIn = &checkIn
		exc.CheckOut = &checkOut
	}

	created, err := s.exceptionRepo.Create(ctx, exc)
	if err != nil {
		return override.ExceptionResponse{}, fmt.Errorf("failed to create schedule exception: %w", err)
	}

	s.recalculate(ctx, scope, startDate, endDate, req.CompanyID)

	return mapExceptionToResponse(created), nil
}

// GetException implements override.OverrideService.
func (s *OverrideServiceImpl) GetException(ctx context.Context, id string, companyID string) (override.ExceptionResponse, error) {
	exc, err := s.exceptionRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, override.ErrExceptionNotFound) {
			return override.ExceptionResponse{}, override.ErrExceptionNotFound
		}
		return override.ExceptionResponse{}, fmt.Errorf("failed to get schedule exception: %w", err)
	}
	return mapExceptionToResponse(exc), nil
}

// ListExceptions implements override.OverrideService.
func (s *OverrideServiceImpl) ListExceptions(ctx context.Context, filter override.OverrideFilter) (override.ListExceptionResponse, error) {
	if err := filter.Validate(); err != nil {
		return override.ListExceptionResponse{}, err
	}

	exceptions, total, err := s.exceptionRepo.List(ctx, filter.CompanyID, filter)
	if err != nil {
		return override.ListExceptionResponse{}, fmt.Errorf("failed to list schedule exceptions: %w", err)
	}

	responses := make([]override.ExceptionResponse, 0, len(exceptions))
	for _, e := range exceptions {
		responses = append(responses, mapExceptionToResponse(e))
	}

	return override.ListExceptionResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Exceptions: responses,
	}, nil
}

// UpdateException implements override.OverrideService.
func (s *OverrideServiceImpl) UpdateException(ctx context.Context, req override.UpdateExceptionRequest) (override.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return override.ExceptionResponse{}, err
	}

	exc, err := s.exceptionRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, override.ErrExceptionNotFound) {
			return override.ExceptionResponse{}, override.ErrExceptionNotFound
		}
		return override.ExceptionResponse{}, fmt.Errorf("failed to get schedule exception: %w", err)
	}

	oldStart, oldEnd := exc.StartDate, exc.EndDate

	if req.StartDate != nil {
		exc.StartDate, _ = override.ParseDate(*req.StartDate)
	}
	if req.EndDate != nil {
		exc.EndDate, _ = override.ParseDate(*req.EndDate)
	}
	if exc.EndDate.Before(exc.StartDate) {
		return override.ExceptionResponse{}, override.ErrInvalidDateRange
	}
	if req.IsDayOff != nil {
		exc.IsDayOff = *req.IsDayOff
	}
	if req.CheckIn != nil {
		checkIn, _ := schedule.ParseTimeOfDay(*req.CheckIn)
		exc.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, _ := schedule.ParseTimeOfDay(*req.CheckOut)
		exc.CheckOut = &checkOut
	}
	if !exc.IsDayOff && (exc.CheckIn == nil || exc.CheckOut == nil) {
		return override.ExceptionResponse{}, override.ErrTimesRequired
	}

	conflict, err := s.guard.HasOverlap(ctx, exc.Scope, exc.StartDate, exc.EndDate, &exc.ID, req.CompanyID)
	if err != nil {
		return override.ExceptionResponse{}, err
	}
	if conflict {
		return override.ExceptionResponse{}, override.ErrOverlappingException
	}

	if err := s.exceptionRepo.Update(ctx, exc); err != nil {
		return override.ExceptionResponse{}, fmt.Errorf("failed to update schedule exception: %w", err)
	}

	// Reclassify the union of the old and new spans; dates the exception no
	// longer covers revert to their underlying window.
	start, end := unionSpan(oldStart, oldEnd, exc.StartDate, exc.EndDate)
	s.recalculate(ctx, exc.Scope, start, end, req.CompanyID)

	return mapExceptionToResponse(exc), nil
}

// DeleteException implements override.OverrideService.
func (s *OverrideServiceImpl) DeleteException(ctx context.Context, id string, companyID string) error {
	exc, err := s.exceptionRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, override.ErrExceptionNotFound) {
			return override.ErrExceptionNotFound
		}
		return fmt.Errorf("failed to get schedule exception: %w", err)
	}

	if err := s.exceptionRepo.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("failed to delete schedule exception: %w", err)
	}

	s.recalculate(ctx, exc.Scope, exc.StartDate, exc.EndDate, companyID)

	return nil
}

func unionSpan(s1, e1, s2, e2 time.Time) (time.Time, time.Time) {
	start := s1
	if s2.Before(start) {
		start = s2
	}
	end := e1
	if e2.After(end) {
		end = e2
	}
	return start, end
}

func mapChangeToResponse(c override.ScheduleChange) override.ChangeResponse {
	return override.ChangeResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		ScopeKind:   string(c.Scope.Kind),
		EntityID:    c.Scope.EntityID,
		ChangeDate:  c.ChangeDate.Format("2006-01-02"),
		NewCheckIn:  c.NewCheckIn.String(),
		NewCheckOut: c.NewCheckOut.String(),
		NightShift:  c.NightShift,
		Reason:      c.Reason,
		CreatedAt:   c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapExceptionToResponse(e override.ScheduleException) override.ExceptionResponse {
	resp := override.ExceptionResponse{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		ScopeKind:    string(e.Scope.Kind),
		EntityID:     e.Scope.EntityID,
		StartDate:    e.StartDate.Format("2006-01-02"),
		EndDate:      e.EndDate.Format("2006-01-02"),
		DurationDays: e.DurationDays(),
		IsDayOff:     e.IsDayOff,
		Reason:       e.Reason,
		CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.CheckIn != nil {
		v := e.CheckIn.String()
		resp.CheckIn = &v
	}
	if e.CheckOut != nil {
		v := e.CheckOut.String()
		resp.CheckOut = &v
	}
	return resp
}
