package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type scheduleRangeRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRangeRepository(db *database.DB) schedule.ScheduleRangeRepository {
	return &scheduleRangeRepositoryImpl{db: db}
}

// Create implements schedule.ScheduleRangeRepository. The schedule's tenant
// is re-checked inside the insert so a range can never attach across
// companies.
func (r *scheduleRangeRepositoryImpl) Create(ctx context.Context, rng schedule.ScheduleRange, companyID string) (schedule.ScheduleRange, error) {
	q := GetQuerier(ctx, r.db)

	rng.ID = uuid.New().String()

	query := `
		INSERT INTO schedule_ranges (id, schedule_id, start_day, end_day, check_in, check_out, night_shift, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		WHERE EXISTS (
			SELECT 1 FROM schedules WHERE id = $2 AND company_id = $8 AND deleted_at IS NULL
		)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rng.ID, rng.ScheduleID, rng.StartDay, rng.EndDay,
		rng.CheckIn.String(), rng.CheckOut.String(), rng.NightShift, companyID,
	).Scan(&rng.CreatedAt, &rng.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleRange{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleRange{}, fmt.Errorf("failed to create schedule range: %w", err)
	}

	return rng, nil
}

// GetByID implements schedule.ScheduleRangeRepository.
func (r *scheduleRangeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (schedule.ScheduleRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sr.id, sr.schedule_id, sr.start_day, sr.end_day, sr.check_in::text, sr.check_out::text, sr.night_shift, sr.created_at, sr.updated_at
		FROM schedule_ranges sr
		JOIN schedules s ON s.id = sr.schedule_id
		WHERE sr.id = $1 AND s.company_id = $2 AND s.deleted_at IS NULL
	`

	rng, err := scanScheduleRange(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleRange{}, schedule.ErrScheduleRangeNotFound
		}
		return schedule.ScheduleRange{}, fmt.Errorf("failed to get schedule range: %w", err)
	}

	return rng, nil
}

// GetByScheduleID implements schedule.ScheduleRangeRepository.
func (r *scheduleRangeRepositoryImpl) GetByScheduleID(ctx context.Context, scheduleID string, companyID string) ([]schedule.ScheduleRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sr.id, sr.schedule_id, sr.start_day, sr.end_day, sr.check_in::text, sr.check_out::text, sr.night_shift, sr.created_at, sr.updated_at
		FROM schedule_ranges sr
		JOIN schedules s ON s.id = sr.schedule_id
		WHERE sr.schedule_id = $1 AND s.company_id = $2 AND s.deleted_at IS NULL
		ORDER BY sr.start_day ASC
	`

	rows, err := q.Query(ctx, query, scheduleID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule ranges: %w", err)
	}
	defer rows.Close()

	var ranges []schedule.ScheduleRange
	for rows.Next() {
		rng, err := scanScheduleRange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule range: %w", err)
		}
		ranges = append(ranges, rng)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ranges, nil
}

// Update implements schedule.ScheduleRangeRepository.
func (r *scheduleRangeRepositoryImpl) Update(ctx context.Context, req schedule.UpdateScheduleRangeRequest, companyID string) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{"updated_at = NOW()"}
	args := []interface{}{}

	if req.StartDay != nil {
		args = append(args, *req.StartDay)
		updates = append(updates, fmt.Sprintf("start_day = $%d", len(args)))
	}
	if req.EndDay != nil {
		args = append(args, *req.EndDay)
		updates = append(updates, fmt.Sprintf("end_day = $%d", len(args)))
	}
	if req.CheckIn != nil {
		args = append(args, *req.CheckIn)
		updates = append(updates, fmt.Sprintf("check_in = $%d", len(args)))
	}
	if req.CheckOut != nil {
		args = append(args, *req.CheckOut)
		updates = append(updates, fmt.Sprintf("check_out = $%d", len(args)))
	}
	if req.NightShift != nil {
		args = append(args, *req.NightShift)
		updates = append(updates, fmt.Sprintf("night_shift = $%d", len(args)))
	}

	args = append(args, req.ID, companyID)
	query := fmt.Sprintf(`
		UPDATE schedule_ranges sr
		SET %s
		FROM schedules s
		WHERE sr.schedule_id = s.id AND sr.id = $%d AND s.company_id = $%d AND s.deleted_at IS NULL
	`, strings.Join(updates, ", "), len(args)-1, len(args))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update schedule range: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleRangeNotFound
	}

	return nil
}

// Delete implements schedule.ScheduleRangeRepository.
func (r *scheduleRangeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM schedule_ranges sr
		USING schedules s
		WHERE sr.schedule_id = s.id AND sr.id = $1 AND s.company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule range: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleRangeNotFound
	}

	return nil
}

func scanScheduleRange(row pgx.Row) (schedule.ScheduleRange, error) {
	var rng schedule.ScheduleRange
	var checkIn, checkOut string

	err := row.Scan(
		&rng.ID, &rng.ScheduleID, &rng.StartDay, &rng.EndDay,
		&checkIn, &checkOut, &rng.NightShift, &rng.CreatedAt, &rng.UpdatedAt,
	)
	if err != nil {
		return schedule.ScheduleRange{}, err
	}

	if rng.CheckIn, err = schedule.ParseTimeOfDay(checkIn); err != nil {
		return schedule.ScheduleRange{}, err
	}
	if rng.CheckOut, err = schedule.ParseTimeOfDay(checkOut); err != nil {
		return schedule.ScheduleRange{}, err
	}

	return rng, nil
}
