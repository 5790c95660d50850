package schedule

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type ScheduleServiceImpl struct {
	db *database.DB
	schedule.ScheduleRepository
	schedule.ScheduleRangeRepository
}

func NewScheduleService(
	db *database.DB,
	scheduleRepo schedule.ScheduleRepository,
	rangeRepo schedule.ScheduleRangeRepository,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		db:                      db,
		ScheduleRepository:      scheduleRepo,
		ScheduleRangeRepository: rangeRepo,
	}
}

// ResolveBaseWindow implements schedule.Catalog. The date's weekday ordinal
// (Sunday=0..Saturday=6) is matched against each range's inclusive day span.
// Ranges never wrap the week boundary, so plain numeric containment is total.
func (s *ScheduleServiceImpl) ResolveBaseWindow(ctx context.Context, scheduleID string, date time.Time, companyID string) (schedule.Window, error) {
	ranges, err := s.ScheduleRangeRepository.GetByScheduleID(ctx, scheduleID, companyID)
	if err != nil {
		return schedule.Window{}, fmt.Errorf("failed to get schedule ranges: %w", err)
	}

	day := int(date.Weekday())
	for _, r := range ranges {
		if r.ContainsDay(day) {
			return r.Window(), nil
		}
	}

	return schedule.Window{}, schedule.ErrNoScheduleForDay
}

// CreateSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	// Only one active schedule may exist per workplace+position pair.
	if req.WorkplaceID != nil || req.PositionID != nil {
		existing, err := s.ScheduleRepository.FindActiveByScope(ctx, req.WorkplaceID, req.PositionID, req.CompanyID)
		if err != nil {
			return schedule.ScheduleResponse{}, fmt.Errorf("failed to check for duplicate schedule: %w", err)
		}
		if existing != nil {
			return schedule.ScheduleResponse{}, schedule.ErrDuplicateActiveSchedule
		}
	}

	grace := 5
	if req.GraceMinutes != nil {
		grace = *req.GraceMinutes
	}

	created, err := s.ScheduleRepository.Create(ctx, schedule.Schedule{
		CompanyID:    req.CompanyID,
		Name:         req.Name,
		WorkplaceID:  req.WorkplaceID,
		PositionID:   req.PositionID,
		GraceMinutes: grace,
		Active:       true,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return mapScheduleToResponse(created), nil
}

// GetSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string, companyID string) (schedule.ScheduleResponse, error) {
	sched, err := s.ScheduleRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	ranges, err := s.ScheduleRangeRepository.GetByScheduleID(ctx, id, companyID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get schedule ranges: %w", err)
	}
	sched.Ranges = ranges

	return mapScheduleToResponse(sched), nil
}

// ListSchedules implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context, filter schedule.ScheduleFilter) (schedule.ListScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return schedule.ListScheduleResponse{}, err
	}

	schedules, total, err := s.ScheduleRepository.List(ctx, filter.CompanyID, filter)
	if err != nil {
		return schedule.ListScheduleResponse{}, fmt.Errorf("failed to list schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, mapScheduleToResponse(sched))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return schedule.ListScheduleResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Schedules:  responses,
	}, nil
}

// UpdateSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	updated, err := s.ScheduleRepository.Update(ctx, req, req.CompanyID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to update schedule: %w", err)
	}

	return mapScheduleToResponse(updated), nil
}

// DeleteSchedule implements schedule.ScheduleService. The soft delete cascades
// to the schedule's ranges and to overrides scoped to it.
func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string, companyID string) error {
	if err := s.ScheduleRepository.SoftDelete(ctx, id, companyID); err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.ErrScheduleAlreadyDeleted
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

// CreateRange implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateRange(ctx context.Context, req schedule.CreateScheduleRangeRequest) (schedule.ScheduleRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleRangeResponse{}, err
	}

	if _, err := s.ScheduleRepository.GetByID(ctx, req.ScheduleID, req.CompanyID); err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.ScheduleRangeResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleRangeResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	existing, err := s.ScheduleRangeRepository.GetByScheduleID(ctx, req.ScheduleID, req.CompanyID)
	if err != nil {
		return schedule.ScheduleRangeResponse{}, fmt.Errorf("failed to get schedule ranges: %w", err)
	}

	// At most one range may cover any given weekday.
	for day := *req.StartDay; day <= *req.EndDay; day++ {
		for _, r := range existing {
			if r.ContainsDay(day) {
				return schedule.ScheduleRangeResponse{}, schedule.ErrOverlappingRange
			}
		}
	}

	checkIn, _ := schedule.ParseTimeOfDay(req.CheckIn)
	checkOut, _ := schedule.ParseTimeOfDay(req.CheckOut)

	created, err := s.ScheduleRangeRepository.Create(ctx, schedule.ScheduleRange{
		ScheduleID: req.ScheduleID,
		StartDay:   *req.StartDay,
		EndDay:     *req.EndDay,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		NightShift: req.NightShift,
	}, req.CompanyID)
	if err != nil {
		return schedule.ScheduleRangeResponse{}, fmt.Errorf("failed to create schedule range: %w", err)
	}

	return mapRangeToResponse(created), nil
}

// UpdateRange implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateRange(ctx context.Context, req schedule.UpdateScheduleRangeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := s.ScheduleRangeRepository.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleRangeNotFound) {
			return schedule.ErrScheduleRangeNotFound
		}
		return fmt.Errorf("failed to get schedule range: %w", err)
	}

	startDay := current.StartDay
	if req.StartDay != nil {
		startDay = *req.StartDay
	}
	endDay := current.EndDay
	if req.EndDay != nil {
		endDay = *req.EndDay
	}
	if startDay > endDay {
		return schedule.ErrWrapAroundRange
	}

	// Moving the range must not land it on days a sibling already covers.
	siblings, err := s.ScheduleRangeRepository.GetByScheduleID(ctx, current.ScheduleID, req.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to get schedule ranges: %w", err)
	}
	for day := startDay; day <= endDay; day++ {
		for _, r := range siblings {
			if r.ID == current.ID {
				continue
			}
			if r.ContainsDay(day) {
				return schedule.ErrOverlappingRange
			}
		}
	}

	if err := s.ScheduleRangeRepository.Update(ctx, req, req.CompanyID); err != nil {
		return fmt.Errorf("failed to update schedule range: %w", err)
	}
	return nil
}

// DeleteRange implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteRange(ctx context.Context, id string, companyID string) error {
	if err := s.ScheduleRangeRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, schedule.ErrScheduleRangeNotFound) {
			return schedule.ErrScheduleRangeNotFound
		}
		return fmt.Errorf("failed to delete schedule range: %w", err)
	}
	return nil
}

func mapScheduleToResponse(s schedule.Schedule) schedule.ScheduleResponse {
	ranges := make([]schedule.ScheduleRangeResponse, 0, len(s.Ranges))
	for _, r := range s.Ranges {
		ranges = append(ranges, mapRangeToResponse(r))
	}

	return schedule.ScheduleResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		Name:         s.Name,
		WorkplaceID:  s.WorkplaceID,
		PositionID:   s.PositionID,
		GraceMinutes: s.GraceMinutes,
		Active:       s.Active,
		Ranges:       ranges,
		CreatedAt:    s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapRangeToResponse(r schedule.ScheduleRange) schedule.ScheduleRangeResponse {
	return schedule.ScheduleRangeResponse{
		ID:         r.ID,
		ScheduleID: r.ScheduleID,
		StartDay:   r.StartDay,
		EndDay:     r.EndDay,
		CheckIn:    r.CheckIn.String(),
		CheckOut:   r.CheckOut.String(),
		NightShift: r.NightShift,
	}
}
