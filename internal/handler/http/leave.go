package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), id.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// ListMine implements LeaveHandler.
func (h *leaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	result, err := h.leaveService.ListMine(r.Context(), id.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAll implements LeaveHandler.
func (h *leaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	query := leave.ListLeaveRequestQuery{Status: r.URL.Query().Get("status")}
	if err := query.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.ListAll(r.Context(), query.ToFilter())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	var req leave.DecideLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Decide(r.Context(), chi.URLParam(r, "id"), id.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+result.Status, result)
}
