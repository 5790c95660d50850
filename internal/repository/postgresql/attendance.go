package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const selectAttendance = `
	SELECT a.id, a.user_id, a.company_id, a.schedule_id, a.date, a.check_in, a.check_out,
		   a.type_assistance, a.late_seconds, a.worked_seconds, a.adjusted_seconds, a.overtime_seconds, a.permission_seconds,
		   a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
		   a.created_at, a.updated_at, u.full_name
	FROM attendances a
	JOIN users u ON u.id = a.user_id
`

// Create implements attendance.AttendanceRepository. The unique constraint on
// (user_id, date) turns a concurrent double check-in into ErrAlreadyCheckedIn
// instead of a duplicate row.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	att.ID = uuid.New().String()

	query := `
		INSERT INTO attendances (id, user_id, company_id, schedule_id, date, check_in, check_out,
			type_assistance, late_seconds, worked_seconds, adjusted_seconds, overtime_seconds, permission_seconds,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.UserID, att.CompanyID, att.ScheduleID, att.Date, att.CheckIn, att.CheckOut,
		string(att.TypeAssistance), att.LateSeconds, att.WorkedSeconds, att.AdjustedSeconds,
		att.OvertimeSeconds, att.PermissionSeconds,
		att.CheckInLatitude, att.CheckInLongitude, att.CheckOutLatitude, att.CheckOutLongitude,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := selectAttendance + `
		WHERE a.id = $1 AND a.company_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// FindByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByUserAndDate(ctx context.Context, userID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := selectAttendance + `
		WHERE a.user_id = $1 AND a.date = $2 AND a.company_id = $3
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}

	return &att, nil
}

// FindByDateAndSchedule implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByDateAndSchedule(ctx context.Context, date time.Time, scheduleID string, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := selectAttendance + `
		WHERE a.date = $1 AND a.schedule_id = $2 AND a.company_id = $3
	`

	rows, err := q.Query(ctx, query, date, scheduleID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance by schedule: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, type_assistance = $3,
			late_seconds = $4, worked_seconds = $5, adjusted_seconds = $6, overtime_seconds = $7, permission_seconds = $8,
			check_out_latitude = $9, check_out_longitude = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12
	`

	tag, err := q.Exec(ctx, query,
		att.CheckIn, att.CheckOut, string(att.TypeAssistance),
		att.LateSeconds, att.WorkedSeconds, att.AdjustedSeconds, att.OvertimeSeconds, att.PermissionSeconds,
		att.CheckOutLatitude, att.CheckOutLongitude, att.ID, att.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// BulkUpdateStatus implements attendance.AttendanceRepository. All staged
// reclassifications land in one transaction; a recalculation is either fully
// applied or not at all.
func (r *attendanceRepositoryImpl) BulkUpdateStatus(ctx context.Context, updates []attendance.StatusUpdate, companyID string) error {
	if len(updates) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(`
				UPDATE attendances
				SET type_assistance = $1, late_seconds = $2, updated_at = NOW()
				WHERE id = $3 AND company_id = $4
			`, string(u.TypeAssistance), u.LateSeconds, u.ID, companyID)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range updates {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to apply status update: %w", err)
			}
		}
		return nil
	})
}

// BulkCreateAbsences implements attendance.AttendanceRepository. Conflicting
// rows are skipped: a user who checked in between the scan and the insert
// keeps their real record.
func (r *attendanceRepositoryImpl) BulkCreateAbsences(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, att := range records {
			batch.Queue(`
				INSERT INTO attendances (id, user_id, company_id, schedule_id, date, type_assistance,
					late_seconds, worked_seconds, adjusted_seconds, overtime_seconds, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
				ON CONFLICT (user_id, date) DO NOTHING
			`, uuid.New().String(), att.UserID, att.CompanyID, att.ScheduleID, att.Date,
				string(att.TypeAssistance), att.LateSeconds, att.WorkedSeconds, att.AdjustedSeconds, att.OvertimeSeconds)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range records {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert absence: %w", err)
			}
		}
		return nil
	})
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return r.list(ctx, filter, companyID, nil)
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetMyAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return r.list(ctx, filter, companyID, &userID)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, filter attendance.AttendanceFilter, companyID string, forUserID *string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.company_id = $1"}
	args := []interface{}{companyID}

	if forUserID != nil {
		args = append(args, *forUserID)
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", len(args)))
	} else if filter.UserID != nil && *filter.UserID != "" {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", len(args)))
	}
	if filter.ScheduleID != nil && *filter.ScheduleID != "" {
		args = append(args, *filter.ScheduleID)
		conditions = append(conditions, fmt.Sprintf("a.schedule_id = $%d", len(args)))
	}
	if filter.Date != nil && *filter.Date != "" {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", len(args)))
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)))
	}
	if filter.TypeAssistance != nil && *filter.TypeAssistance != "" {
		args = append(args, *filter.TypeAssistance)
		conditions = append(conditions, fmt.Sprintf("a.type_assistance = $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY a.date DESC, u.full_name ASC
		LIMIT $%d OFFSET $%d
	`, selectAttendance, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var typeAssistance string

	err := row.Scan(
		&att.ID, &att.UserID, &att.CompanyID, &att.ScheduleID, &att.Date, &att.CheckIn, &att.CheckOut,
		&typeAssistance, &att.LateSeconds, &att.WorkedSeconds, &att.AdjustedSeconds, &att.OvertimeSeconds, &att.PermissionSeconds,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.CreatedAt, &att.UpdatedAt, &att.UserName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	att.TypeAssistance = attendance.TypeAssistance(typeAssistance)
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return attendances, nil
}
