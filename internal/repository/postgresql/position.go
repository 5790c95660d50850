package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/master/position"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	p.ID = uuid.New().String()

	query := `
		INSERT INTO positions (id, company_id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, p.ID, p.CompanyID, p.Name, p.Active).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return p, nil
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM positions
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var p position.Position
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return p, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context, companyID string) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM positions
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, p position.Position) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET name = $1, active = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, p.Name, p.Active, p.ID, p.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// SoftDelete implements position.PositionRepository.
func (r *positionRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions SET deleted_at = NOW(), active = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}
