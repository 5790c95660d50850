package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
)

// CoordinatorImpl reclassifies stored attendance after an override mutation.
// It stages every change first and persists them as one batch, so a half
// recalculated range is never visible.
type CoordinatorImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	scheduleRepo   schedule.ScheduleRepository
	companyRepo    company.CompanyRepository
	resolver       override.Resolver
}

func NewCoordinator(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	scheduleRepo schedule.ScheduleRepository,
	companyRepo company.CompanyRepository,
	resolver override.Resolver,
) *CoordinatorImpl {
	return &CoordinatorImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		scheduleRepo:   scheduleRepo,
		companyRepo:    companyRepo,
		resolver:       resolver,
	}
}

// RecalculateRange implements attendance.RecalculationCoordinator. Records a
// new window puts on a day off, or records missing their check-in, are
// skipped and reported rather than failing the batch. Only engine-derived
// classifications are touched; manually assigned statuses such as vacation
// stay as the admin set them.
func (c *CoordinatorImpl) RecalculateRange(ctx context.Context, scope override.Scope, startDate, endDate time.Time, companyID string) (attendance.RecalculationReport, error) {
	report := attendance.RecalculationReport{}

	tz, err := c.companyRepo.GetTimezone(ctx, companyID)
	if err != nil {
		return report, fmt.Errorf("failed to get company timezone: %w", err)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return report, fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}

	scheduleIDs, err := c.affectedScheduleIDs(ctx, scope, companyID)
	if err != nil {
		return report, err
	}

	users := make(map[string]user.User)
	schedules := make(map[string]schedule.Schedule)
	var updates []attendance.StatusUpdate

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		records, err := c.recordsForDate(ctx, scope, scheduleIDs, date, companyID)
		if err != nil {
			return report, err
		}

		for _, att := range records {
			report.Total++

			if att.TypeAssistance != attendance.TypePresent && att.TypeAssistance != attendance.TypeLate {
				continue
			}
			if att.CheckIn == nil {
				report.Skipped = append(report.Skipped, attendance.RecalculationFailure{
					AttendanceID: att.ID,
					Reason:       attendance.ErrMissingCheckIn.Error(),
				})
				continue
			}

			u, ok := users[att.UserID]
			if !ok {
				u, err = c.userRepo.GetByID(ctx, att.UserID, companyID)
				if err != nil {
					report.Skipped = append(report.Skipped, attendance.RecalculationFailure{
						AttendanceID: att.ID,
						Reason:       fmt.Sprintf("failed to load user: %v", err),
					})
					continue
				}
				users[att.UserID] = u
			}

			window, err := c.resolver.ResolveEffectiveWindow(ctx, entityRefForUser(u), date)
			if err != nil {
				reason := fmt.Sprintf("failed to resolve window: %v", err)
				if errors.Is(err, schedule.ErrNoScheduleForDay) {
					reason = "no working window for this date under the new rules"
				}
				report.Skipped = append(report.Skipped, attendance.RecalculationFailure{
					AttendanceID: att.ID,
					Reason:       reason,
				})
				continue
			}
			if window.IsDayOff {
				report.Skipped = append(report.Skipped, attendance.RecalculationFailure{
					AttendanceID: att.ID,
					Reason:       "date became a day off; record left untouched",
				})
				continue
			}

			sched, ok := schedules[att.ScheduleID]
			if !ok {
				sched, err = c.scheduleRepo.GetByID(ctx, att.ScheduleID, companyID)
				if err != nil {
					report.Skipped = append(report.Skipped, attendance.RecalculationFailure{
						AttendanceID: att.ID,
						Reason:       fmt.Sprintf("failed to load schedule: %v", err),
					})
					continue
				}
				schedules[att.ScheduleID] = sched
			}

			typ, late := ClassifyCheckIn(schedule.TimeOfDayFromTime(att.CheckIn.In(loc)), window.CheckIn, sched.GraceMinutes)

			prevLate := 0
			if att.LateSeconds != nil {
				prevLate = *att.LateSeconds
			}
			if typ == att.TypeAssistance && late == prevLate {
				continue
			}

			updates = append(updates, attendance.StatusUpdate{
				ID:             att.ID,
				TypeAssistance: typ,
				LateSeconds:    late,
			})
			report.Updated = append(report.Updated, att.ID)
		}
	}

	if len(updates) > 0 {
		if err := c.attendanceRepo.BulkUpdateStatus(ctx, updates, companyID); err != nil {
			return report, fmt.Errorf("failed to persist reclassifications: %w", err)
		}
	}

	return report, nil
}

// affectedScheduleIDs maps an override scope to the schedules whose records
// it can touch. User-scoped overrides resolve per user instead, so they need
// no schedule fan-out.
func (c *CoordinatorImpl) affectedScheduleIDs(ctx context.Context, scope override.Scope, companyID string) ([]string, error) {
	switch scope.Kind {
	case override.ScopeUser:
		return nil, nil
	case override.ScopeSchedule:
		return []string{scope.EntityID}, nil
	case override.ScopeWorkplace:
		ids, err := c.scheduleRepo.ListActiveIDsByWorkplace(ctx, scope.EntityID, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list schedules for workplace: %w", err)
		}
		return ids, nil
	case override.ScopePosition:
		ids, err := c.scheduleRepo.ListActiveIDsByPosition(ctx, scope.EntityID, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list schedules for position: %w", err)
		}
		return ids, nil
	case override.ScopeCompany, override.ScopeHoliday:
		ids, err := c.scheduleRepo.ListActiveIDsByCompany(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list schedules for company: %w", err)
		}
		return ids, nil
	default:
		return nil, override.ErrInvalidScope
	}
}

func (c *CoordinatorImpl) recordsForDate(ctx context.Context, scope override.Scope, scheduleIDs []string, date time.Time, companyID string) ([]attendance.Attendance, error) {
	if scope.Kind == override.ScopeUser {
		att, err := c.attendanceRepo.FindByUserAndDate(ctx, scope.EntityID, date, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to find attendance for user: %w", err)
		}
		if att == nil {
			return nil, nil
		}
		return []attendance.Attendance{*att}, nil
	}

	var records []attendance.Attendance
	for _, sid := range scheduleIDs {
		batch, err := c.attendanceRepo.FindByDateAndSchedule(ctx, date, sid, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to find attendance for schedule: %w", err)
		}
		records = append(records, batch...)
	}
	return records, nil
}

func entityRefForUser(u user.User) override.EntityRef {
	ref := override.EntityRef{
		UserID:    u.ID,
		CompanyID: u.CompanyID,
	}
	if u.ScheduleID != nil {
		ref.ScheduleID = *u.ScheduleID
	}
	if u.WorkplaceID != nil {
		ref.WorkplaceID = *u.WorkplaceID
	}
	if u.PositionID != nil {
		ref.PositionID = *u.PositionID
	}
	return ref
}
