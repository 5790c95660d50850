package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	scheduleRepo   schedule.ScheduleRepository
	companyRepo    company.CompanyRepository
	resolver       override.Resolver
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	scheduleRepo schedule.ScheduleRepository,
	companyRepo company.CompanyRepository,
	resolver override.Resolver,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		scheduleRepo:   scheduleRepo,
		companyRepo:    companyRepo,
		resolver:       resolver,
	}
}

// tenantLocation loads the company's IANA timezone. All wall-clock decisions
// (which calendar date it is, how late a check-in is) happen in this zone;
// timestamps themselves are stored in UTC.
func (s *AttendanceServiceImpl) tenantLocation(ctx context.Context, companyID string) (*time.Location, error) {
	tz, err := s.companyRepo.GetTimezone(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company timezone: %w", err)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	return loc, nil
}

// localDate truncates t to its calendar date in loc, represented as UTC
// midnight. Dates are compared and stored in this canonical form.
func localDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements attendance.AttendanceService. The record is classified
// immediately against the effective window for today.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if u.ScheduleID == nil {
		return attendance.AttendanceResponse{}, user.ErrNoScheduleAssigned
	}

	loc, err := s.tenantLocation(ctx, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	date := localDate(now, loc)

	existing, err := s.attendanceRepo.FindByUserAndDate(ctx, req.UserID, date, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	window, err := s.resolver.ResolveEffectiveWindow(ctx, entityRefForUser(u), date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if window.IsDayOff {
		return attendance.AttendanceResponse{}, attendance.ErrDayOff
	}

	sched, err := s.scheduleRepo.GetByID(ctx, *u.ScheduleID, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	typ, late := ClassifyCheckIn(schedule.TimeOfDayFromTime(now.In(loc)), window.CheckIn, sched.GraceMinutes)

	checkIn := now.UTC()
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		UserID:           req.UserID,
		CompanyID:        req.CompanyID,
		ScheduleID:       *u.ScheduleID,
		Date:             date,
		CheckIn:          &checkIn,
		TypeAssistance:   typ,
		LateSeconds:      &late,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created, loc), nil
}

// CheckOut implements attendance.AttendanceService. Duration figures are
// derived here; the check-in classification is kept unless the user leaves
// before the expected check-out.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	loc, err := s.tenantLocation(ctx, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	date := localDate(now, loc)

	att, err := s.attendanceRepo.FindByUserAndDate(ctx, req.UserID, date, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to find attendance: %w", err)
	}
	if att == nil || att.CheckOut != nil {
		// A night shift checks out on the calendar day after its record.
		prev, prevErr := s.attendanceRepo.FindByUserAndDate(ctx, req.UserID, date.AddDate(0, 0, -1), req.CompanyID)
		if prevErr != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to find attendance: %w", prevErr)
		}
		if prev != nil && prev.CheckIn != nil && prev.CheckOut == nil {
			att = prev
		} else if att == nil {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		} else {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
		}
	}
	if att.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	window, err := s.resolver.ResolveEffectiveWindow(ctx, entityRefForUser(u), att.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	permission := 0
	if att.PermissionSeconds != nil {
		permission = *att.PermissionSeconds
	}
	durations := ComputeWorkedDuration(att.CheckIn.In(loc), now.In(loc), window.Window, permission)

	// Expected check-out as an instant on the record's date, shifted a day
	// forward for night shifts.
	expectedOut := time.Date(att.Date.Year(), att.Date.Month(), att.Date.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(window.CheckOut) * time.Second)
	if window.NightShift {
		expectedOut = expectedOut.AddDate(0, 0, 1)
	}
	if now.Before(expectedOut) {
		att.TypeAssistance = attendance.TypeEarlyExit
	}

	checkOut := now.UTC()
	att.CheckOut = &checkOut
	att.WorkedSeconds = &durations.WorkedSeconds
	att.AdjustedSeconds = &durations.AdjustedSeconds
	att.OvertimeSeconds = &durations.OvertimeSeconds
	att.CheckOutLatitude = req.Latitude
	att.CheckOutLongitude = req.Longitude

	if err := s.attendanceRepo.Update(ctx, *att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return mapAttendanceToResponse(*att, loc), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string, companyID string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	loc, err := s.tenantLocation(ctx, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(att, loc), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, filter.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return s.buildListResponse(ctx, filter, records, total)
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.GetMyAttendance(ctx, userID, filter, filter.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return s.buildListResponse(ctx, filter, records, total)
}

func (s *AttendanceServiceImpl) buildListResponse(ctx context.Context, filter attendance.AttendanceFilter, records []attendance.Attendance, total int64) (attendance.ListAttendanceResponse, error) {
	loc, err := s.tenantLocation(ctx, filter.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att, loc))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService. Admin corrections
// to timestamps or permission time recompute the derived figures from scratch.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	loc, err := s.tenantLocation(ctx, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	recompute := false
	if req.CheckIn != nil {
		t, err := parseTimestamp(*req.CheckIn, att.Date, loc)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		att.CheckIn = t
		recompute = true
	}
	if req.CheckOut != nil {
		t, err := parseTimestamp(*req.CheckOut, att.Date, loc)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		att.CheckOut = t
		recompute = true
	}
	if req.PermissionSeconds != nil {
		att.PermissionSeconds = req.PermissionSeconds
		recompute = true
	}

	if recompute && att.CheckIn != nil {
		u, err := s.userRepo.GetByID(ctx, att.UserID, req.CompanyID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get user: %w", err)
		}
		window, err := s.resolver.ResolveEffectiveWindow(ctx, entityRefForUser(u), att.Date)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if !window.IsDayOff {
			sched, err := s.scheduleRepo.GetByID(ctx, att.ScheduleID, req.CompanyID)
			if err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to get schedule: %w", err)
			}
			typ, late := ClassifyCheckIn(schedule.TimeOfDayFromTime(att.CheckIn.In(loc)), window.CheckIn, sched.GraceMinutes)
			att.TypeAssistance = typ
			att.LateSeconds = &late

			if att.CheckOut != nil {
				permission := 0
				if att.PermissionSeconds != nil {
					permission = *att.PermissionSeconds
				}
				durations := ComputeWorkedDuration(att.CheckIn.In(loc), att.CheckOut.In(loc), window.Window, permission)
				att.WorkedSeconds = &durations.WorkedSeconds
				att.AdjustedSeconds = &durations.AdjustedSeconds
				att.OvertimeSeconds = &durations.OvertimeSeconds
			}
		}
	}

	// An explicit classification wins over the recomputed one. Admins use
	// this for statuses the engine cannot derive, like medical leave.
	if req.TypeAssistance != nil {
		att.TypeAssistance = attendance.TypeAssistance(*req.TypeAssistance)
	}

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return mapAttendanceToResponse(att, loc), nil
}

// parseTimestamp accepts either a full "2006-01-02 15:04:05" timestamp or a
// bare "15:04:05" time applied to the record's date, both read in loc.
func parseTimestamp(s string, date time.Time, loc *time.Location) (*time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, loc); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	tod, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		return nil, schedule.ErrInvalidDateFormat
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(tod) * time.Second).UTC()
	return &t, nil
}

func mapAttendanceToResponse(att attendance.Attendance, loc *time.Location) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:             att.ID,
		UserID:         att.UserID,
		UserName:       att.UserName,
		ScheduleID:     att.ScheduleID,
		Date:           att.Date.Format("2006-01-02"),
		TypeAssistance: string(att.TypeAssistance),
		CreatedAt:      att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if att.CheckIn != nil {
		v := att.CheckIn.In(loc).Format("2006-01-02 15:04:05")
		resp.CheckIn = &v
	}
	if att.CheckOut != nil {
		v := att.CheckOut.In(loc).Format("2006-01-02 15:04:05")
		resp.CheckOut = &v
	}
	if att.LateSeconds != nil && *att.LateSeconds > 0 {
		v := attendance.FormatSeconds(*att.LateSeconds)
		resp.LateTime = &v
	}
	if att.WorkedSeconds != nil {
		v := attendance.FormatSeconds(*att.WorkedSeconds)
		resp.HoursWorked = &v
	}
	if att.AdjustedSeconds != nil {
		v := attendance.FormatSeconds(*att.AdjustedSeconds)
		resp.AdjustedHours = &v
	}
	if att.OvertimeSeconds != nil {
		v := attendance.FormatSeconds(*att.OvertimeSeconds)
		resp.OvertimeHours = &v
	}

	return resp
}
