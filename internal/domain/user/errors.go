package user

import "github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound            = apperror.New(apperror.ErrNotFound, "user not found")
	ErrEmployeeNotFound        = apperror.New(apperror.ErrNotFound, "employee not found")
	ErrUserEmailExists         = apperror.New(apperror.ErrConflict, "email already registered")
	ErrEmployeeIDExists        = apperror.New(apperror.ErrConflict, "employee id already registered")
	ErrAdminPrivilegeRequired  = apperror.New(apperror.ErrForbidden, "admin privilege required")
	ErrInsufficientPermissions = apperror.New(apperror.ErrForbidden, "insufficient permissions")
)
