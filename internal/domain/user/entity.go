package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

// User is an employee account. WorkplaceID, PositionID and ScheduleID anchor
// the user in the override hierarchy; any of them may be unset.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	WorkplaceID  *string
	PositionID   *string
	ScheduleID   *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
