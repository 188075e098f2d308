package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Set(w http.ResponseWriter, r *http.Request)
	GetByEmployeeID(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Set implements PayrollHandler.
func (h *payrollHandlerImpl) Set(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Set payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.SetPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Payroll config saved", "employee_id", result.EmployeeID)
	response.SuccessWithMessage(w, "Payroll config saved", result)
}

// GetByEmployeeID implements PayrollHandler.
func (h *payrollHandlerImpl) GetByEmployeeID(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetByEmployeeID(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMine implements PayrollHandler.
func (h *payrollHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	result, err := h.payrollService.GetMyPayroll(r.Context(), id.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
