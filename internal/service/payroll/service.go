package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// EmployeeLookup confirms an employee code exists.
type EmployeeLookup interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error)
}

type PayrollServiceImpl struct {
	payrollRepo payroll.PayrollConfigRepository
	employees   EmployeeLookup
}

func NewPayrollService(payrollRepo payroll.PayrollConfigRepository, employees EmployeeLookup) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo: payrollRepo,
		employees:   employees,
	}
}

// SetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) SetPayroll(ctx context.Context, req payroll.SetPayrollRequest) (payroll.PayrollConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollConfigResponse{}, err
	}

	if _, err := s.employees.GetByEmployeeID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, user.ErrEmployeeNotFound) {
			return payroll.PayrollConfigResponse{}, payroll.ErrEmployeeNotFound
		}
		return payroll.PayrollConfigResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	computed, err := Compute(req.Input())
	if err != nil {
		return payroll.PayrollConfigResponse{}, err
	}

	saved, err := s.payrollRepo.Upsert(ctx, payroll.PayrollConfig{
		EmployeeID:  req.EmployeeID,
		MonthlyWage: req.MonthlyWage,
		YearlyWage:  req.MonthlyWage.Mul(decimal.NewFromInt(payroll.MonthsPerYear)),
		Components: payroll.Components{
			BasicPercent:       req.Components.BasicPercent,
			HRAPercent:         req.Components.HRAPercent,
			StandardAllowance:  req.Components.StandardAllowance,
			PerformancePercent: req.Components.PerformancePercent,
			LTAPercent:         req.Components.LTAPercent,
		},
		Deductions: payroll.Deductions{
			PFRate:          req.Deductions.PFRate,
			ProfessionalTax: req.Deductions.ProfessionalTax,
		},
		Computed: computed,
	})
	if err != nil {
		return payroll.PayrollConfigResponse{}, fmt.Errorf("failed to save payroll config: %w", err)
	}

	return payroll.NewPayrollConfigResponse(saved), nil
}

// GetByEmployeeID implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.PayrollConfigResponse, error) {
	config, err := s.payrollRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return payroll.PayrollConfigResponse{}, err
	}
	return payroll.NewPayrollConfigResponse(config), nil
}

// GetMyPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetMyPayroll(ctx context.Context, employeeID string) (payroll.MyPayrollResponse, error) {
	config, err := s.payrollRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return payroll.MyPayrollResponse{}, err
	}
	return payroll.NewMyPayrollResponse(config), nil
}
