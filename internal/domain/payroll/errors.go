package payroll

import "github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"

var (
	ErrInvalidSalaryBreakup  = apperror.New(apperror.ErrValidation, "invalid salary breakup")
	ErrPayrollConfigNotFound = apperror.New(apperror.ErrNotFound, "payroll config not found")
	ErrEmployeeNotFound      = apperror.New(apperror.ErrNotFound, "employee not found")
)
