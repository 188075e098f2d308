package payroll

import (
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percentOf rounds half away from zero to the stored two decimal places.
func percentOf(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(hundred).Round(2)
}

// Compute derives every amount from in. HRA, performance and LTA are
// percentages of the rounded basic; basic is a percentage of the monthly
// wage. The residual and net figures are taken from the rounded components,
// so a stored config always adds up. Returns ErrInvalidSalaryBreakup when
// the named components exceed the wage.
func Compute(in payroll.CompensationInput) (payroll.Computed, error) {
	basic := percentOf(in.MonthlyWage, in.BasicPercent)
	hra := percentOf(basic, in.HRAPercent)
	performance := percentOf(basic, in.PerformancePercent)
	lta := percentOf(basic, in.LTAPercent)

	used := basic.Add(hra).Add(performance).Add(lta).Add(in.StandardAllowance)
	fixed := in.MonthlyWage.Sub(used)
	if fixed.IsNegative() {
		return payroll.Computed{}, payroll.ErrInvalidSalaryBreakup
	}

	pf := percentOf(basic, in.PFRate)

	return payroll.Computed{
		Basic:            basic,
		HRA:              hra,
		PerformanceBonus: performance,
		LTA:              lta,
		FixedAllowance:   fixed,
		PFEmployee:       pf,
		PFEmployer:       pf,
		NetSalary:        in.MonthlyWage.Sub(pf).Sub(in.ProfessionalTax),
	}, nil
}
