package payroll

import (
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func standardInput() payroll.CompensationInput {
	return payroll.CompensationInput{
		MonthlyWage:        d("50000"),
		BasicPercent:       d("50"),
		HRAPercent:         d("50"),
		PerformancePercent: d("8.33"),
		LTAPercent:         d("8.33"),
		StandardAllowance:  d("4167"),
		PFRate:             d("12"),
		ProfessionalTax:    d("200"),
	}
}

func TestCompute_StandardBreakup(t *testing.T) {
	got, err := Compute(standardInput())
	require.NoError(t, err)

	cases := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"basic", got.Basic, "25000"},
		{"hra", got.HRA, "12500"},
		{"performance", got.PerformanceBonus, "2082.5"},
		{"lta", got.LTA, "2082.5"},
		{"fixed", got.FixedAllowance, "4168"},
		{"pf employee", got.PFEmployee, "3000"},
		{"pf employer", got.PFEmployer, "3000"},
		{"net", got.NetSalary, "46800"},
	}
	for _, c := range cases {
		assert.True(t, c.got.Equal(d(c.want)), "%s = %s, want %s", c.name, c.got, c.want)
	}
}

func TestCompute_Invariants(t *testing.T) {
	inputs := []payroll.CompensationInput{
		standardInput(),
		{MonthlyWage: d("30000"), BasicPercent: d("40"), HRAPercent: d("40"), PFRate: d("12"), ProfessionalTax: d("200")},
		{MonthlyWage: d("1000"), BasicPercent: d("100")},
		{MonthlyWage: d("80000"), BasicPercent: d("0"), StandardAllowance: d("80000")},
	}

	for _, in := range inputs {
		got, err := Compute(in)
		require.NoError(t, err)

		used := got.Basic.Add(got.HRA).Add(got.PerformanceBonus).Add(got.LTA).Add(in.StandardAllowance)
		assert.True(t, got.FixedAllowance.Equal(in.MonthlyWage.Sub(used)))
		assert.False(t, got.FixedAllowance.IsNegative())
		assert.True(t, got.NetSalary.Equal(in.MonthlyWage.Sub(got.PFEmployee).Sub(in.ProfessionalTax)))
	}
}

func TestCompute_RejectsOverallocation(t *testing.T) {
	in := standardInput()
	in.HRAPercent = d("100") // 25000 + 25000 + extras > 50000

	_, err := Compute(in)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryBreakup)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCompute_ExactlyFullAllocation(t *testing.T) {
	got, err := Compute(payroll.CompensationInput{
		MonthlyWage:       d("10000"),
		BasicPercent:      d("50"),
		HRAPercent:        d("80"),
		StandardAllowance: d("1000"),
	})
	require.NoError(t, err)
	assert.True(t, got.FixedAllowance.IsZero())
}

func TestCompute_FractionalPercentagesRoundToCents(t *testing.T) {
	in := payroll.CompensationInput{
		MonthlyWage:        d("10000"),
		BasicPercent:       d("33.33"),
		HRAPercent:         d("8.33"),
		PerformancePercent: d("8.33"),
		LTAPercent:         d("8.33"),
		PFRate:             d("12.5"),
	}
	got, err := Compute(in)
	require.NoError(t, err)

	cases := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"basic", got.Basic, "3333"},
		{"hra", got.HRA, "277.64"}, // 277.6389
		{"performance", got.PerformanceBonus, "277.64"},
		{"lta", got.LTA, "277.64"},
		{"fixed", got.FixedAllowance, "5834.08"},
		{"pf", got.PFEmployee, "416.63"}, // 416.625
		{"net", got.NetSalary, "9583.37"},
	}
	for _, c := range cases {
		assert.True(t, c.got.Equal(d(c.want)), "%s = %s, want %s", c.name, c.got, c.want)
		assert.True(t, c.got.Equal(c.got.Round(2)), "%s has more than two decimals", c.name)
	}
}
