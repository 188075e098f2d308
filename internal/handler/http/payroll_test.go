package http

import (
	"net/http"
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payrollBody(employeeID string, standardAllowance float64) map[string]any {
	return map[string]any{
		"employeeId":  employeeID,
		"monthlyWage": 50000,
		"components": map[string]any{
			"basicPercent":       50,
			"hraPercent":         50,
			"standardAllowance":  standardAllowance,
			"performancePercent": 8.33,
			"ltaPercent":         8.33,
		},
		"deductions": map[string]any{
			"pfRate":          12,
			"professionalTax": 200,
		},
	}
}

func TestPayrollHandler_SetAndView(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("ADM001", "admin@example.com", user.RoleAdmin)
	env.createUser("EMP001", "asha@example.com", user.RoleEmployee)
	adminToken := env.login("admin@example.com")
	empToken := env.login("asha@example.com")

	rec := env.do(http.MethodGet, "/api/v1/payroll/me/view", empToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/payroll", empToken, payrollBody("EMP001", 4167))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/payroll", adminToken, payrollBody("EMP001", 4167))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/payroll/me/view", empToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view struct {
		MonthlyWage decimal.Decimal `json:"monthlyWage"`
		NetSalary   decimal.Decimal `json:"netSalary"`
	}
	env.decode(rec, &view)
	assert.True(t, view.NetSalary.Equal(decimal.NewFromInt(46800)), view.NetSalary.String())
	assert.Contains(t, rec.Body.String(), `"netSalary":"46800"`)

	rec = env.do(http.MethodGet, "/api/v1/payroll/employee/EMP001", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg struct {
		YearlyWage decimal.Decimal `json:"yearlyWage"`
	}
	env.decode(rec, &cfg)
	assert.True(t, cfg.YearlyWage.Equal(decimal.NewFromInt(600000)), cfg.YearlyWage.String())
}

func TestPayrollHandler_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("ADM001", "admin@example.com", user.RoleAdmin)
	adminToken := env.login("admin@example.com")

	rec := env.do(http.MethodPost, "/api/v1/payroll", adminToken, payrollBody("EMP404", 4167))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// components exceed the wage
	rec = env.do(http.MethodPost, "/api/v1/payroll", adminToken, payrollBody("ADM001", 40000))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/payroll/employee/EMP404", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
