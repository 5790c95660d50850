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

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	s.ID = uuid.New().String()

	query := `
		INSERT INTO schedules (id, company_id, name, workplace_id, position_id, grace_minutes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.Name, s.WorkplaceID, s.PositionID, s.GraceMinutes, s.Active,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return s, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, workplace_id, position_id, grace_minutes, active, created_at, updated_at
		FROM schedules
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var s schedule.Schedule
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.WorkplaceID, &s.PositionID,
		&s.GraceMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	return s, nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) List(ctx context.Context, companyID string, filter schedule.ScheduleFilter) ([]schedule.Schedule, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []interface{}{companyID}

	if filter.Name != nil && *filter.Name != "" {
		args = append(args, "%"+*filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM schedules WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT id, company_id, name, workplace_id, position_id, grace_minutes, active, created_at, updated_at
		FROM schedules
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		var s schedule.Schedule
		err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Name, &s.WorkplaceID, &s.PositionID,
			&s.GraceMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return schedules, total, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, req schedule.UpdateScheduleRequest, companyID string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	updates := []string{"updated_at = NOW()"}
	args := []interface{}{}

	if req.Name != nil {
		args = append(args, *req.Name)
		updates = append(updates, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.GraceMinutes != nil {
		args = append(args, *req.GraceMinutes)
		updates = append(updates, fmt.Sprintf("grace_minutes = $%d", len(args)))
	}
	if req.Active != nil {
		args = append(args, *req.Active)
		updates = append(updates, fmt.Sprintf("active = $%d", len(args)))
	}

	args = append(args, req.ID, companyID)
	query := fmt.Sprintf(`
		UPDATE schedules
		SET %s
		WHERE id = $%d AND company_id = $%d AND deleted_at IS NULL
		RETURNING id, company_id, name, workplace_id, position_id, grace_minutes, active, created_at, updated_at
	`, strings.Join(updates, ", "), len(args)-1, len(args))

	var s schedule.Schedule
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.WorkplaceID, &s.PositionID,
		&s.GraceMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to update schedule: %w", err)
	}

	return s, nil
}

// SoftDelete implements schedule.ScheduleRepository. The delete cascades to
// the schedule's ranges and to overrides scoped to it, inside one transaction.
func (r *scheduleRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE schedules SET deleted_at = NOW(), active = FALSE, updated_at = NOW()
			WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		`, id, companyID)
		if err != nil {
			return fmt.Errorf("failed to delete schedule: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return schedule.ErrScheduleNotFound
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM schedule_ranges WHERE schedule_id = $1
		`, id); err != nil {
			return fmt.Errorf("failed to delete schedule ranges: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE schedule_changes SET deleted_at = NOW()
			WHERE scope_kind = 'SCHEDULE' AND entity_id = $1 AND company_id = $2 AND deleted_at IS NULL
		`, id, companyID); err != nil {
			return fmt.Errorf("failed to delete schedule changes: %w", err)
		}

		return nil
	})
}

// FindActiveByScope implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) FindActiveByScope(ctx context.Context, workplaceID, positionID *string, companyID string) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, workplace_id, position_id, grace_minutes, active, created_at, updated_at
		FROM schedules
		WHERE company_id = $1
		  AND active = TRUE
		  AND deleted_at IS NULL
		  AND workplace_id IS NOT DISTINCT FROM $2
		  AND position_id IS NOT DISTINCT FROM $3
		LIMIT 1
	`

	var s schedule.Schedule
	err := q.QueryRow(ctx, query, companyID, workplaceID, positionID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.WorkplaceID, &s.PositionID,
		&s.GraceMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active schedule: %w", err)
	}

	return &s, nil
}

// ListActiveIDsByCompany implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListActiveIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	return r.listActiveIDs(ctx, `
		SELECT id FROM schedules
		WHERE company_id = $1 AND active = TRUE AND deleted_at IS NULL
	`, companyID)
}

// ListActiveIDsByWorkplace implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListActiveIDsByWorkplace(ctx context.Context, workplaceID string, companyID string) ([]string, error) {
	return r.listActiveIDs(ctx, `
		SELECT id FROM schedules
		WHERE workplace_id = $1 AND company_id = $2 AND active = TRUE AND deleted_at IS NULL
	`, workplaceID, companyID)
}

// ListActiveIDsByPosition implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListActiveIDsByPosition(ctx context.Context, positionID string, companyID string) ([]string, error) {
	return r.listActiveIDs(ctx, `
		SELECT id FROM schedules
		WHERE position_id = $1 AND company_id = $2 AND active = TRUE AND deleted_at IS NULL
	`, positionID, companyID)
}

func (r *scheduleRepositoryImpl) listActiveIDs(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan schedule id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}
