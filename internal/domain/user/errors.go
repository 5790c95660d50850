package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserInactive           = errors.New("user is not active")
	ErrEmailExists            = errors.New("email already registered in this company")
	ErrNoScheduleAssigned     = errors.New("user has no schedule assigned")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrCompanyIDRequired      = errors.New("company id is required")
)
