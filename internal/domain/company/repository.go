package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, c Company) error
	SoftDelete(ctx context.Context, id string) error

	// GetTimezone returns the tenant's canonical IANA zone name.
	GetTimezone(ctx context.Context, id string) (string, error)
}
