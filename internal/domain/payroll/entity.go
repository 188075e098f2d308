package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthsPerYear converts a monthly wage into the stored yearly wage.
const MonthsPerYear = 12

// Components are the percentage-based earnings inputs. HRA, performance and
// LTA are percentages of basic; basic is a percentage of the monthly wage.
type Components struct {
	BasicPercent       decimal.Decimal
	HRAPercent         decimal.Decimal
	StandardAllowance  decimal.Decimal
	PerformancePercent decimal.Decimal
	LTAPercent         decimal.Decimal
}

type Deductions struct {
	PFRate          decimal.Decimal
	ProfessionalTax decimal.Decimal
}

// Computed holds absolute amounts derived from the inputs. It is always
// recomputed in full from a CompensationInput.
type Computed struct {
	Basic            decimal.Decimal
	HRA              decimal.Decimal
	PerformanceBonus decimal.Decimal
	LTA              decimal.Decimal
	FixedAllowance   decimal.Decimal
	PFEmployee       decimal.Decimal
	PFEmployer       decimal.Decimal
	NetSalary        decimal.Decimal
}

// PayrollConfig - one per employee, keyed by employee code
type PayrollConfig struct {
	ID          string
	EmployeeID  string
	MonthlyWage decimal.Decimal
	YearlyWage  decimal.Decimal
	Components  Components
	Deductions  Deductions
	Computed    Computed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompensationInput is the flat input of the compensation calculation.
type CompensationInput struct {
	MonthlyWage        decimal.Decimal
	BasicPercent       decimal.Decimal
	HRAPercent         decimal.Decimal
	PerformancePercent decimal.Decimal
	LTAPercent         decimal.Decimal
	StandardAllowance  decimal.Decimal
	PFRate             decimal.Decimal
	ProfessionalTax    decimal.Decimal
}

func (c PayrollConfig) Input() CompensationInput {
	return CompensationInput{
		MonthlyWage:        c.MonthlyWage,
		BasicPercent:       c.Components.BasicPercent,
		HRAPercent:         c.Components.HRAPercent,
		PerformancePercent: c.Components.PerformancePercent,
		LTAPercent:         c.Components.LTAPercent,
		StandardAllowance:  c.Components.StandardAllowance,
		PFRate:             c.Deductions.PFRate,
		ProfessionalTax:    c.Deductions.ProfessionalTax,
	}
}
