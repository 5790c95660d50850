package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/user"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const selectUser = `
	SELECT id, company_id, email, password_hash, full_name, role, workplace_id, position_id, schedule_id, active, created_at, updated_at
	FROM users
`

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u.ID = uuid.New().String()

	query := `
		INSERT INTO users (id, company_id, email, password_hash, full_name, role, workplace_id, position_id, schedule_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID, u.CompanyID, u.Email, u.PasswordHash, u.FullName, string(u.Role),
		u.WorkplaceID, u.PositionID, u.ScheduleID, u.Active,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := selectUser + `
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	u, err := scanUser(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository. Login happens before any tenant
// context exists, so the lookup crosses companies.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := selectUser + `
		WHERE email = $1 AND deleted_at IS NULL
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, companyID string) ([]user.User, error) {
	return r.listWhere(ctx, `
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY full_name ASC
	`, companyID)
}

// ListActiveByCompany implements user.UserRepository.
func (r *userRepositoryImpl) ListActiveByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return r.listWhere(ctx, `
		WHERE company_id = $1 AND active = TRUE AND deleted_at IS NULL
		ORDER BY full_name ASC
	`, companyID)
}

func (r *userRepositoryImpl) listWhere(ctx context.Context, clause string, args ...interface{}) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, selectUser+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $1, role = $2, workplace_id = $3, position_id = $4, schedule_id = $5, active = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		u.FullName, string(u.Role), u.WorkplaceID, u.PositionID, u.ScheduleID, u.Active,
		u.ID, u.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SoftDelete implements user.UserRepository.
func (r *userRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET deleted_at = NOW(), active = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var role string

	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.FullName, &role,
		&u.WorkplaceID, &u.PositionID, &u.ScheduleID, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	u.Role = user.Role(role)
	return u, nil
}
