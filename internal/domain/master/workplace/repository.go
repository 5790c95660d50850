package workplace

import (
	"context"
	"time"
)

type Workplace struct {
	ID        string
	CompanyID string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type WorkplaceRepository interface {
	Create(ctx context.Context, w Workplace) (Workplace, error)
	GetByID(ctx context.Context, id string, companyID string) (Workplace, error)
	List(ctx context.Context, companyID string) ([]Workplace, error)
	Update(ctx context.Context, w Workplace) error
	SoftDelete(ctx context.Context, id string, companyID string) error
}
