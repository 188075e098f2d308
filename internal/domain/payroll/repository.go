package payroll

import "context"

type PayrollConfigRepository interface {
	// Upsert creates or wholesale replaces the config of config.EmployeeID.
	Upsert(ctx context.Context, config PayrollConfig) (PayrollConfig, error)

	// GetByEmployeeID returns ErrPayrollConfigNotFound when absent.
	GetByEmployeeID(ctx context.Context, employeeID string) (PayrollConfig, error)
}

type PayrollService interface {
	// SetPayroll computes and stores the config of an employee (admin).
	SetPayroll(ctx context.Context, req SetPayrollRequest) (PayrollConfigResponse, error)

	// GetByEmployeeID returns the full config of an employee (admin).
	GetByEmployeeID(ctx context.Context, employeeID string) (PayrollConfigResponse, error)

	// GetMyPayroll returns the restricted view for the employee.
	GetMyPayroll(ctx context.Context, employeeID string) (MyPayrollResponse, error)
}
