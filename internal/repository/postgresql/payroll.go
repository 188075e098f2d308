package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollConfigColumns = `id, employee_id, monthly_wage, yearly_wage,
	basic_percent, hra_percent, standard_allowance, performance_percent, lta_percent,
	pf_rate, professional_tax,
	basic, hra, performance_bonus, lta, fixed_allowance, pf_employee, pf_employer, net_salary,
	created_at, updated_at`

type payrollConfigRepository struct {
	db *database.DB
}

func NewPayrollConfigRepository(db *database.DB) payroll.PayrollConfigRepository {
	return &payrollConfigRepository{db: db}
}

func scanPayrollConfig(row pgx.Row) (payroll.PayrollConfig, error) {
	var c payroll.PayrollConfig
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.MonthlyWage, &c.YearlyWage,
		&c.Components.BasicPercent, &c.Components.HRAPercent, &c.Components.StandardAllowance,
		&c.Components.PerformancePercent, &c.Components.LTAPercent,
		&c.Deductions.PFRate, &c.Deductions.ProfessionalTax,
		&c.Computed.Basic, &c.Computed.HRA, &c.Computed.PerformanceBonus, &c.Computed.LTA,
		&c.Computed.FixedAllowance, &c.Computed.PFEmployee, &c.Computed.PFEmployer, &c.Computed.NetSalary,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Upsert implements payroll.PayrollConfigRepository.
func (r *payrollConfigRepository) Upsert(ctx context.Context, c payroll.PayrollConfig) (payroll.PayrollConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_configs (
			employee_id, monthly_wage, yearly_wage,
			basic_percent, hra_percent, standard_allowance, performance_percent, lta_percent,
			pf_rate, professional_tax,
			basic, hra, performance_bonus, lta, fixed_allowance, pf_employee, pf_employer, net_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT ON CONSTRAINT payroll_configs_employee_key DO UPDATE SET
			monthly_wage = EXCLUDED.monthly_wage,
			yearly_wage = EXCLUDED.yearly_wage,
			basic_percent = EXCLUDED.basic_percent,
			hra_percent = EXCLUDED.hra_percent,
			standard_allowance = EXCLUDED.standard_allowance,
			performance_percent = EXCLUDED.performance_percent,
			lta_percent = EXCLUDED.lta_percent,
			pf_rate = EXCLUDED.pf_rate,
			professional_tax = EXCLUDED.professional_tax,
			basic = EXCLUDED.basic,
			hra = EXCLUDED.hra,
			performance_bonus = EXCLUDED.performance_bonus,
			lta = EXCLUDED.lta,
			fixed_allowance = EXCLUDED.fixed_allowance,
			pf_employee = EXCLUDED.pf_employee,
			pf_employer = EXCLUDED.pf_employer,
			net_salary = EXCLUDED.net_salary,
			updated_at = NOW()
		RETURNING ` + payrollConfigColumns

	saved, err := scanPayrollConfig(q.QueryRow(ctx, query,
		c.EmployeeID, c.MonthlyWage, c.YearlyWage,
		c.Components.BasicPercent, c.Components.HRAPercent, c.Components.StandardAllowance,
		c.Components.PerformancePercent, c.Components.LTAPercent,
		c.Deductions.PFRate, c.Deductions.ProfessionalTax,
		c.Computed.Basic, c.Computed.HRA, c.Computed.PerformanceBonus, c.Computed.LTA,
		c.Computed.FixedAllowance, c.Computed.PFEmployee, c.Computed.PFEmployer, c.Computed.NetSalary,
	))
	if err != nil {
		return payroll.PayrollConfig{}, fmt.Errorf("failed to upsert payroll config: %w", err)
	}
	return saved, nil
}

// GetByEmployeeID implements payroll.PayrollConfigRepository.
func (r *payrollConfigRepository) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.PayrollConfig, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanPayrollConfig(q.QueryRow(ctx, `SELECT `+payrollConfigColumns+` FROM payroll_configs WHERE employee_id = $1`, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollConfig{}, payroll.ErrPayrollConfigNotFound
		}
		return payroll.PayrollConfig{}, fmt.Errorf("failed to get payroll config: %w", err)
	}
	return c, nil
}
