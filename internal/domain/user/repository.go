package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string, companyID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, companyID string) ([]User, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]User, error)
	Update(ctx context.Context, u User) error
	SoftDelete(ctx context.Context, id string, companyID string) error
}
