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

type scheduleExceptionRepositoryImpl struct {
	db *database.DB
}

func NewScheduleExceptionRepository(db *database.DB) override.ScheduleExceptionRepository {
	return &scheduleExceptionRepositoryImpl{db: db}
}

// Create implements override.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) Create(ctx context.Context, exc override.ScheduleException) (override.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	exc.ID = uuid.New().String()

	query := `
		INSERT INTO schedule_exceptions (id, company_id, scope_kind, entity_id, start_date, end_date, is_day_off, check_in, check_out, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		exc.ID, exc.CompanyID, string(exc.Scope.Kind), exc.Scope.EntityID,
		exc.StartDate, exc.EndDate, exc.IsDayOff,
		timeOfDayArg(exc.CheckIn), timeOfDayArg(exc.CheckOut), exc.Reason,
	).Scan(&exc.CreatedAt, &exc.UpdatedAt)
	if err != nil {
		return override.ScheduleException{}, fmt.Errorf("failed to create schedule exception: %w", err)
	}

	return exc, nil
}

// GetByID implements override.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (override.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	query := selectException + `
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	exc, err := scanException(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return override.ScheduleException{}, override.ErrExceptionNotFound
		}
		return override.ScheduleException{}, fmt.Errorf("failed to get schedule exception: %w", err)
	}

	return exc, nil
}

// Update implements override.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) Update(ctx context.Context, exc override.ScheduleException) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_exceptions
		SET start_date = $1, end_date = $2, is_day_off = $3, check_in = $4, check_out = $5, reason = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		exc.StartDate, exc.EndDate, exc.IsDayOff,
		timeOfDayArg(exc.CheckIn), timeOfDayArg(exc.CheckOut), exc.Reason,
		exc.ID, exc.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule exception: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return override.ErrExceptionNotFound
	}

	return nil
}

// Delete implements override.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_exceptions SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule exception: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return override.ErrExceptionNotFound
	}

	return nil
}

// List implements override.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) List(ctx context.Context, companyID string, filter override.OverrideFilter) ([]override.ScheduleException, int64, error) {
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
		conditions = append(conditions, fmt.Sprintf("end_date >= $%d", len(args)))
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM schedule_exceptions WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count schedule exceptions: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY start_date DESC
		LIMIT $%d OFFSET $%d
	`, selectException, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list schedule exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []override.ScheduleException
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule exception: %w", err)
		}
		exceptions = append(exceptions, exc)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return exceptions, total, nil
}

// FindByScopeAndDate implements override.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) FindByScopeAndDate(ctx context.Context, scope override.Scope, date time.Time, companyID string) (*override.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	query := selectException + `
		WHERE company_id = $1 AND scope_kind = $2 AND entity_id = $3
		  AND start_date <= $4 AND end_date >= $4
		  AND deleted_at IS NULL
		LIMIT 1
	`

	exc, err := scanException(q.QueryRow(ctx, query, companyID, string(scope.Kind), scope.EntityID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find schedule exception: %w", err)
	}

	return &exc, nil
}

// FindHolidayByDate implements override.ScheduleExceptionRepository. Global
// holidays carry an empty entity id and apply to every tenant.
func (r *scheduleExceptionRepositoryImpl) FindHolidayByDate(ctx context.Context, companyID string, date time.Time) (*override.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	query := selectException + `
		WHERE scope_kind = 'HOLIDAY'
		  AND (entity_id = $1 OR entity_id = '')
		  AND (company_id = $1 OR entity_id = '')
		  AND start_date <= $2 AND end_date >= $2
		  AND deleted_at IS NULL
		ORDER BY entity_id DESC
		LIMIT 1
	`

	exc, err := scanException(q.QueryRow(ctx, query, companyID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find holiday: %w", err)
	}

	return &exc, nil
}

// FindOverlapping implements override.ScheduleExceptionRepository.
func (r *scheduleExceptionRepositoryImpl) FindOverlapping(ctx context.Context, scope override.Scope, startDate, endDate time.Time, excludeID *string, companyID string) ([]override.ScheduleException, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{companyID, string(scope.Kind), scope.EntityID, startDate, endDate}
	query := selectException + `
		WHERE company_id = $1 AND scope_kind = $2 AND entity_id = $3
		  AND start_date <= $5 AND end_date >= $4
		  AND deleted_at IS NULL
	`
	if excludeID != nil {
		args = append(args, *excludeID)
		query += fmt.Sprintf(" AND id <> $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []override.ScheduleException
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule exception: %w", err)
		}
		exceptions = append(exceptions, exc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return exceptions, nil
}

const selectException = `
	SELECT id, company_id, scope_kind, entity_id, start_date, end_date, is_day_off, check_in::text, check_out::text, reason, created_at, updated_at
	FROM schedule_exceptions
`

// timeOfDayArg renders an optional wall-clock time for a nullable TIME column.
func timeOfDayArg(t *schedule.TimeOfDay) interface{} {
	if t == nil {
		return nil
	}
	return t.String()
}

func scanException(row pgx.Row) (override.ScheduleException, error) {
	var exc override.ScheduleException
	var scopeKind string
	var checkIn, checkOut *string

	err := row.Scan(
		&exc.ID, &exc.CompanyID, &scopeKind, &exc.Scope.EntityID,
		&exc.StartDate, &exc.EndDate, &exc.IsDayOff,
		&checkIn, &checkOut, &exc.Reason, &exc.CreatedAt, &exc.UpdatedAt,
	)
	if err != nil {
		return override.ScheduleException{}, err
	}

	exc.Scope.Kind = override.ScopeKind(scopeKind)
	if checkIn != nil {
		t, err := schedule.ParseTimeOfDay(*checkIn)
		if err != nil {
			return override.ScheduleException{}, err
		}
		exc.CheckIn = &t
	}
	if checkOut != nil {
		t, err := schedule.ParseTimeOfDay(*checkOut)
		if err != nil {
			return override.ScheduleException{}, err
		}
		exc.CheckOut = &t
	}

	return exc, nil
}
