package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	calendar *clock.Calendar
	metrics  *metrics.Metrics
}

func NewAttendanceService(repo attendance.AttendanceRepository, calendar *clock.Calendar, m *metrics.Metrics) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		calendar:             calendar,
		metrics:              m,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := a.calendar.Now().UTC()
	today := a.calendar.DateOf(now)

	_, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	// HALF_DAY until check-out resolves the day
	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     attendance.StatusHalfDay,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	a.countEvent("check_in")
	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := a.calendar.Now().UTC()
	today := a.calendar.DateOf(now)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckInRequired
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if !record.IsCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrCheckInRequired
	}
	if record.IsCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	status := attendance.StatusForHours(now.Sub(*record.CheckIn).Hours())
	closed, err := a.AttendanceRepository.CloseDay(ctx, record.ID, now, status)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) || errors.Is(err, attendance.ErrCheckInRequired) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	a.countEvent("check_out")
	return attendance.NewAttendanceResponse(closed), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// UpsertStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (attendance.Attendance, error) {
	if !status.IsValid() {
		return attendance.Attendance{}, attendance.ErrInvalidStatus
	}
	record, err := a.AttendanceRepository.UpsertStatus(ctx, employeeID, date, status)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance for %s on %s: %w", employeeID, clock.FormatDate(date), err)
	}
	return record, nil
}

func (a *AttendanceServiceImpl) countEvent(event string) {
	if a.metrics != nil {
		a.metrics.AttendanceEvents.WithLabelValues(event).Inc()
	}
}
