package payroll

import (
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// maxAmount is the exclusive ceiling of a NUMERIC(14,2) money column.
	maxAmount = decimal.New(1, 12)
)

// moneyScale is the number of decimal places stored for every amount and rate.
const moneyScale = 2

// ========== REQUEST DTOs ==========

type ComponentsRequest struct {
	BasicPercent       decimal.Decimal `json:"basicPercent"`
	HRAPercent         decimal.Decimal `json:"hraPercent"`
	StandardAllowance  decimal.Decimal `json:"standardAllowance"`
	PerformancePercent decimal.Decimal `json:"performancePercent"`
	LTAPercent         decimal.Decimal `json:"ltaPercent"`
}

type DeductionsRequest struct {
	PFRate          decimal.Decimal `json:"pfRate"`
	ProfessionalTax decimal.Decimal `json:"professionalTax"`
}

type SetPayrollRequest struct {
	EmployeeID  string            `json:"employeeId" validate:"required"`
	MonthlyWage decimal.Decimal   `json:"monthlyWage"`
	Components  ComponentsRequest `json:"components"`
	Deductions  DeductionsRequest `json:"deductions"`
}

func (r *SetPayrollRequest) Validate() error {
	errs := validator.Struct(r)

	type field struct {
		name  string
		value decimal.Decimal
	}
	fail := func(f field, msg string) {
		errs = append(errs, validator.ValidationError{Field: f.name, Message: f.name + " " + msg})
	}

	wage := field{"monthlyWage", r.MonthlyWage}
	if !wage.value.IsPositive() {
		fail(wage, "must be greater than 0")
	}

	amounts := []field{
		wage,
		{"components.standardAllowance", r.Components.StandardAllowance},
		{"deductions.professionalTax", r.Deductions.ProfessionalTax},
	}
	for _, f := range amounts {
		switch {
		case f.value.IsNegative():
			fail(f, "must be non-negative")
		case !f.value.LessThan(maxAmount):
			fail(f, "must be less than "+maxAmount.String())
		case !hasMoneyScale(f.value):
			fail(f, "must have at most 2 decimal places")
		}
	}

	percents := []field{
		{"components.basicPercent", r.Components.BasicPercent},
		{"components.hraPercent", r.Components.HRAPercent},
		{"components.performancePercent", r.Components.PerformancePercent},
		{"components.ltaPercent", r.Components.LTAPercent},
		{"deductions.pfRate", r.Deductions.PFRate},
	}
	for _, f := range percents {
		switch {
		case f.value.IsNegative() || f.value.GreaterThan(hundred):
			fail(f, "must be between 0 and 100")
		case !hasMoneyScale(f.value):
			fail(f, "must have at most 2 decimal places")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func hasMoneyScale(v decimal.Decimal) bool {
	return v.Equal(v.Truncate(moneyScale))
}

func (r *SetPayrollRequest) Input() CompensationInput {
	return CompensationInput{
		MonthlyWage:        r.MonthlyWage,
		BasicPercent:       r.Components.BasicPercent,
		HRAPercent:         r.Components.HRAPercent,
		PerformancePercent: r.Components.PerformancePercent,
		LTAPercent:         r.Components.LTAPercent,
		StandardAllowance:  r.Components.StandardAllowance,
		PFRate:             r.Deductions.PFRate,
		ProfessionalTax:    r.Deductions.ProfessionalTax,
	}
}

// ========== RESPONSE DTOs ==========

type ComputedResponse struct {
	Basic            decimal.Decimal `json:"basic"`
	HRA              decimal.Decimal `json:"hra"`
	PerformanceBonus decimal.Decimal `json:"performanceBonus"`
	LTA              decimal.Decimal `json:"lta"`
	FixedAllowance   decimal.Decimal `json:"fixedAllowance"`
	PFEmployee       decimal.Decimal `json:"pfEmployee"`
	PFEmployer       decimal.Decimal `json:"pfEmployer"`
	NetSalary        decimal.Decimal `json:"netSalary"`
}

type PayrollConfigResponse struct {
	EmployeeID  string            `json:"employeeId"`
	MonthlyWage decimal.Decimal   `json:"monthlyWage"`
	YearlyWage  decimal.Decimal   `json:"yearlyWage"`
	Components  ComponentsRequest `json:"components"`
	Deductions  DeductionsRequest `json:"deductions"`
	Computed    ComputedResponse  `json:"computed"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// MyPayrollResponse is the employee-facing view without configuration inputs.
type MyPayrollResponse struct {
	MonthlyWage decimal.Decimal  `json:"monthlyWage"`
	NetSalary   decimal.Decimal  `json:"netSalary"`
	Components  ComputedResponse `json:"components"`
}

func newComputedResponse(c Computed) ComputedResponse {
	return ComputedResponse{
		Basic:            c.Basic,
		HRA:              c.HRA,
		PerformanceBonus: c.PerformanceBonus,
		LTA:              c.LTA,
		FixedAllowance:   c.FixedAllowance,
		PFEmployee:       c.PFEmployee,
		PFEmployer:       c.PFEmployer,
		NetSalary:        c.NetSalary,
	}
}

func NewPayrollConfigResponse(c PayrollConfig) PayrollConfigResponse {
	return PayrollConfigResponse{
		EmployeeID:  c.EmployeeID,
		MonthlyWage: c.MonthlyWage,
		YearlyWage:  c.YearlyWage,
		Components: ComponentsRequest{
			BasicPercent:       c.Components.BasicPercent,
			HRAPercent:         c.Components.HRAPercent,
			StandardAllowance:  c.Components.StandardAllowance,
			PerformancePercent: c.Components.PerformancePercent,
			LTAPercent:         c.Components.LTAPercent,
		},
		Deductions: DeductionsRequest{
			PFRate:          c.Deductions.PFRate,
			ProfessionalTax: c.Deductions.ProfessionalTax,
		},
		Computed:  newComputedResponse(c.Computed),
		UpdatedAt: c.UpdatedAt,
	}
}

func NewMyPayrollResponse(c PayrollConfig) MyPayrollResponse {
	return MyPayrollResponse{
		MonthlyWage: c.MonthlyWage,
		NetSalary:   c.Computed.NetSalary,
		Components:  newComputedResponse(c.Computed),
	}
}
