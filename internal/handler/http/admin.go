package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/profile"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// DayCloser runs the day-close sweep for one date.
type DayCloser interface {
	Run(ctx context.Context, date time.Time) (cron.DayCloseResult, error)
}

type DayCloseRequest struct {
	Date string `json:"date" validate:"omitempty,date"`
}

type AdminHandler interface {
	GetEmployeeRecord(w http.ResponseWriter, r *http.Request)
	RunDayClose(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	profileService profile.ProfileService
	dayCloser      DayCloser
	calendar       *clock.Calendar
}

func NewAdminHandler(profileService profile.ProfileService, dayCloser DayCloser, calendar *clock.Calendar) AdminHandler {
	return &adminHandlerImpl{
		profileService: profileService,
		dayCloser:      dayCloser,
		calendar:       calendar,
	}
}

func (h *adminHandlerImpl) GetEmployeeRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.profileService.GetEmployeeRecord(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// RunDayClose re-runs the sweep for a day that has already ended, yesterday
// by default. The current day is left to the scheduled run so employees who
// have not checked in yet are not marked absent.
func (h *adminHandlerImpl) RunDayClose(w http.ResponseWriter, r *http.Request) {
	var req DayCloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if errs := validator.Struct(&req); len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	today := h.calendar.Today()
	date := today.AddDate(0, 0, -1)
	if req.Date != "" {
		date, _ = clock.ParseDate(req.Date)
	}
	if !date.Before(today) {
		response.BadRequest(w, "date must be before today", nil)
		return
	}

	result, err := h.dayCloser.Run(r.Context(), date)
	if err != nil {
		// a concurrent run surfaces as 409 through its conflict kind
		if !errors.Is(err, cron.ErrDayCloseInProgress) {
			slog.Error("Manual day close failed", "date", clock.FormatDate(date), "error", err)
		}
		response.HandleError(w, err)
		return
	}

	slog.Info("Manual day close finished", "date", result.Date, "marked_absent", result.MarkedAbsent, "failed", result.Failed)
	response.Success(w, result)
}
