package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
)

// AttendanceJobs marks users absent for days they had a working window but no
// attendance record. The (user_id, date) uniqueness constraint makes the job
// safe to re-run and safe against a concurrent late check-in.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	companyRepo    company.CompanyRepository
	resolver       override.Resolver
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	resolver override.Resolver,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		resolver:       resolver,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent users job")

	companies, err := j.companyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	totalAbsent := 0

	for _, comp := range companies {
		loc, err := time.LoadLocation(comp.Timezone)
		if err != nil {
			loc = time.UTC
		}

		// Yesterday in the tenant's canonical zone.
		nowLocal := time.Now().In(loc)
		yesterday := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

		users, err := j.userRepo.ListActiveByCompany(ctx, comp.ID)
		if err != nil {
			slog.Error("Cron: Failed to list users", "company_id", comp.ID, "error", err)
			continue
		}

		var absences []attendance.Attendance

		for _, u := range users {
			if u.ScheduleID == nil {
				continue
			}

			ref := override.EntityRef{
				UserID:     u.ID,
				ScheduleID: *u.ScheduleID,
				CompanyID:  comp.ID,
			}
			if u.WorkplaceID != nil {
				ref.WorkplaceID = *u.WorkplaceID
			}
			if u.PositionID != nil {
				ref.PositionID = *u.PositionID
			}

			window, err := j.resolver.ResolveEffectiveWindow(ctx, ref, yesterday)
			if err != nil {
				if errors.Is(err, schedule.ErrNoScheduleForDay) {
					continue
				}
				slog.Error("Cron: Failed to resolve window", "user_id", u.ID, "error", err)
				continue
			}
			if window.IsDayOff {
				continue
			}

			existing, err := j.attendanceRepo.FindByUserAndDate(ctx, u.ID, yesterday, comp.ID)
			if err != nil {
				slog.Error("Cron: Failed to look up attendance", "user_id", u.ID, "error", err)
				continue
			}
			if existing != nil {
				continue
			}

			zero := 0
			absences = append(absences, attendance.Attendance{
				UserID:          u.ID,
				CompanyID:       comp.ID,
				ScheduleID:      *u.ScheduleID,
				Date:            yesterday,
				TypeAssistance:  attendance.TypeAbsent,
				WorkedSeconds:   &zero,
				AdjustedSeconds: &zero,
			})
		}

		if len(absences) > 0 {
			if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
				slog.Error("Cron: Failed to bulk create absences", "company_id", comp.ID, "error", err)
				continue
			}
			totalAbsent += len(absences)
		}
	}

	slog.Info("Cron: Marked absent users", "count", totalAbsent)
	return nil
}
