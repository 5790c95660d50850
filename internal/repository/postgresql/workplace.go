package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/workplace"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type workplaceRepositoryImpl struct {
	db *database.DB
}

func NewWorkplaceRepository(db *database.DB) workplace.WorkplaceRepository {
	return &workplaceRepositoryImpl{db: db}
}

// Create implements workplace.WorkplaceRepository.
func (r *workplaceRepositoryImpl) Create(ctx context.Context, w workplace.Workplace) (workplace.Workplace, error) {
	q := GetQuerier(ctx, r.db)

	w.ID = uuid.New().String()

	query := `
		INSERT INTO workplaces (id, company_id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, w.ID, w.CompanyID, w.Name, w.Active).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return workplace.Workplace{}, fmt.Errorf("failed to create workplace: %w", err)
	}

	return w, nil
}

// GetByID implements workplace.WorkplaceRepository.
func (r *workplaceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (workplace.Workplace, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM workplaces
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var w workplace.Workplace
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&w.ID, &w.CompanyID, &w.Name, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workplace.Workplace{}, workplace.ErrWorkplaceNotFound
		}
		return workplace.Workplace{}, fmt.Errorf("failed to get workplace: %w", err)
	}

	return w, nil
}

// List implements workplace.WorkplaceRepository.
func (r *workplaceRepositoryImpl) List(ctx context.Context, companyID string) ([]workplace.Workplace, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM workplaces
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workplaces: %w", err)
	}
	defer rows.Close()

	var workplaces []workplace.Workplace
	for rows.Next() {
		var w workplace.Workplace
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workplace: %w", err)
		}
		workplaces = append(workplaces, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return workplaces, nil
}

// Update implements workplace.WorkplaceRepository.
func (r *workplaceRepositoryImpl) Update(ctx context.Context, w workplace.Workplace) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workplaces
		SET name = $1, active = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, w.Name, w.Active, w.ID, w.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update workplace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workplace.ErrWorkplaceNotFound
	}

	return nil
}

// SoftDelete implements workplace.WorkplaceRepository.
func (r *workplaceRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workplaces SET deleted_at = NOW(), active = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete workplace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workplace.ErrWorkplaceNotFound
	}

	return nil
}
