package company

import "time"

// Company is a tenant. Timezone is the canonical reference zone for the
// tenant: "today" and every wall-clock comparison is evaluated in it.
type Company struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
