package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	result, err := h.attendanceService.CheckIn(r.Context(), id.EmployeeID)
	if err != nil {
		slog.Warn("Check-in refused", "employee_id", id.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	result, err := h.attendanceService.CheckOut(r.Context(), id.EmployeeID)
	if err != nil {
		slog.Warn("Check-out refused", "employee_id", id.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	records, err := h.attendanceService.GetMyAttendance(r.Context(), id.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func parseAttendanceQuery(r *http.Request) (attendance.AttendanceFilter, error) {
	q := r.URL.Query()
	query := attendance.ListAttendanceQuery{
		EmployeeID: q.Get("employeeId"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}
	if err := query.Validate(); err != nil {
		return attendance.AttendanceFilter{}, err
	}
	return query.ToFilter(), nil
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Export implements AttendanceHandler. The workbook is built in memory so a
// failure can still be reported as JSON.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.attendanceService.ExportAttendance(r.Context(), filter, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write attendance export", "error", err)
	}
}
