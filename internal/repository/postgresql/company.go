package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/company"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	c.ID = uuid.New().String()

	query := `
		INSERT INTO companies (id, name, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.ID, c.Name, c.Timezone).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return c, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, created_at, updated_at
		FROM companies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Timezone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, created_at, updated_at
		FROM companies
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Timezone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $1, timezone = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, c.Name, c.Timezone, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// SoftDelete implements company.CompanyRepository.
func (r *companyRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// GetTimezone implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetTimezone(ctx context.Context, id string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var tz string
	err := q.QueryRow(ctx, `SELECT timezone FROM companies WHERE id = $1 AND deleted_at IS NULL`, id).Scan(&tz)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", company.ErrCompanyNotFound
		}
		return "", fmt.Errorf("failed to get company timezone: %w", err)
	}

	return tz, nil
}
