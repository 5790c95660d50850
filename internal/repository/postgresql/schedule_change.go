package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type scheduleChangeRepositoryImpl struct {
	db *database.DB
}

func NewScheduleChangeRepository(db *database.DB) override.ScheduleChangeRepository {
	return &scheduleChangeRepositoryImpl{db: db}
}

// Create implements override.ScheduleChangeRepository. The partial unique
// index on (company_id, scope_kind, entity_id, change_date) backs the
// duplicate check in the service under concurrency.
func (r *scheduleChangeRepositoryImpl) Create(ctx context.Context, change override.ScheduleChange) (override.ScheduleChange, error) {
	q := GetQuerier(ctx, r.db)

	change.ID = uuid.New().String()

	query := `
		INSERT INTO schedule_changes (id, company_id, scope_kind, entity_id, change_date, new_check_in, new_check_out, night_shift, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		change.ID, change.CompanyID, string(change.Scope.Kind), change.Scope.EntityID,
		change.ChangeDate, change.NewCheckIn.String(), change.NewCheckOut.String(),
		change.NightShift, change.Reason,
	).Scan(&change.CreatedAt, &change.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return override.ScheduleChange{}, override.ErrDuplicateChange
		}
		return override.ScheduleChange{}, fmt.Errorf("failed to create schedule change: %w", err)
	}

	return change, nil
}

// GetByID implements override.ScheduleChangeRepository.
func (r *scheduleChangeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (override.ScheduleChange, error) {
	q := GetQuerier(ctx, r.db)

	query := selectChange + `
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	change, err := scanChange(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return override.ScheduleChange{}, override.ErrChangeNotFound
		}
		return override.ScheduleChange{}, fmt.Errorf("failed to get schedule change: %w", err)
	}

	return change, nil
}

// Update implements override.ScheduleChangeRepository.
func (r *scheduleChangeRepositoryImpl) Update(ctx context.Context, change override.ScheduleChange) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_changes
		SET new_check_in = $1, new_check_out = $2, night_shift = $3, reason = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		change.NewCheckIn.String(), change.NewCheckOut.String(),
		change.NightShift, change.Reason, change.ID, change.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return override.ErrChangeNotFound
	}

	return nil
}

// Delete implements override.ScheduleChangeRepository.
func (r *scheduleChangeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_changes SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return override.ErrChangeNotFound
	}

	return nil
}

// List implements override.ScheduleChangeRepository.
func (r *scheduleChangeRepositoryImpl) List(ctx context.Context, companyID string, filter override.OverrideFilter) ([]override.ScheduleChange, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []interface{}{companyID}

	if filter.ScopeKind != nil && *filter.ScopeKind != "" {
		args = append(args, *filter.ScopeKind)
		conditions = append(conditions, fmt.Sprintf("scope_kind = $%d", len(args)))
	}
	if filter.EntityID != nil && *filter.EntityID != "" {
		args = append(args, *filter.EntityID)
		conditions = append(conditions, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("change_date >= $%d", len(args)))
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("change_date <= $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM schedule_changes WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count schedule changes: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY change_date DESC
		LIMIT $%d OFFSET $%d
	`, selectChange, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list schedule changes: %w", err)
	}
	defer rows.Close()

	var changes []override.ScheduleChange
	for rows.Next() {
		change, err := scanChange(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule change: %w", err)
		}
		changes = append(changes, change)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return changes, total, nil
}

// FindByScopeAndDate implements override.ScheduleChangeRepository.
func (r *scheduleChangeRepositoryImpl) FindByScopeAndDate(ctx context.Context, scope override.Scope, date time.Time, companyID string) (*override.ScheduleChange, error) {
	q := GetQuerier(ctx, r.db)

	query := selectChange + `
		WHERE company_id = $1 AND scope_kind = $2 AND entity_id = $3 AND change_date = $4 AND deleted_at IS NULL
	`

	change, err := scanChange(q.QueryRow(ctx, query, companyID, string(scope.Kind), scope.EntityID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find schedule change: %w", err)
	}

	return &change, nil
}

const selectChange = `
	SELECT id, company_id, scope_kind, entity_id, change_date, new_check_in::text, new_check_out::text, night_shift, reason, created_at, updated_at
	FROM schedule_changes
`

func scanChange(row pgx.Row) (override.ScheduleChange, error) {
	var change override.ScheduleChange
	var scopeKind, newCheckIn, newCheckOut string

	err := row.Scan(
		&change.ID, &change.CompanyID, &scopeKind, &change.Scope.EntityID,
		&change.ChangeDate, &newCheckIn, &newCheckOut,
		&change.NightShift, &change.Reason, &change.CreatedAt, &change.UpdatedAt,
	)
	if err != nil {
		return override.ScheduleChange{}, err
	}

	change.Scope.Kind = override.ScopeKind(scopeKind)
	if change.NewCheckIn, err = schedule.ParseTimeOfDay(newCheckIn); err != nil {
		return override.ScheduleChange{}, err
	}
	if change.NewCheckOut, err = schedule.ParseTimeOfDay(newCheckOut); err != nil {
		return override.ScheduleChange{}, err
	}

	return change, nil
}
