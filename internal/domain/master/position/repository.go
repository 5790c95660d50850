package position

import (
	"context"
	"time"
)

type Position struct {
	ID        string
	CompanyID string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type PositionRepository interface {
	Create(ctx context.Context, p Position) (Position, error)
	GetByID(ctx context.Context, id string, companyID string) (Position, error)
	List(ctx context.Context, companyID string) ([]Position, error)
	Update(ctx context.Context, p Position) error
	SoftDelete(ctx context.Context, id string, companyID string) error
}
