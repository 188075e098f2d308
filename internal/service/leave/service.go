package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
)

// AttendanceStatusWriter is the attendance ledger write used on approval.
type AttendanceStatusWriter interface {
	UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (attendance.Attendance, error)
}

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	attendance AttendanceStatusWriter
	tx         database.Transactor
	clock      clock.Clock
	metrics    *metrics.Metrics
}

func NewLeaveService(
	repo leave.LeaveRequestRepository,
	attendanceWriter AttendanceStatusWriter,
	tx database.Transactor,
	c clock.Clock,
	m *metrics.Metrics,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: repo,
		attendance:             attendanceWriter,
		tx:                     tx,
		clock:                  c,
		metrics:                m,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		Type:       leave.LeaveKind(req.Type),
		FromDate:   req.From,
		ToDate:     req.To,
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// Decide implements leave.LeaveService. The status flip and every attendance
// write of an approval commit together, so a failed approval stays PENDING
// and can be retried.
func (s *LeaveServiceImpl) Decide(ctx context.Context, requestID string, deciderID string, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	status := leave.LeaveRequestStatus(req.Status)
	decidedAt := s.clock.Now().UTC()

	var decided leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		d, err := s.LeaveRequestRepository.Decide(ctx, requestID, status, req.AdminComment, deciderID, decidedAt)
		if err != nil {
			return err
		}

		if d.Status == leave.LeaveRequestStatusApproved {
			for _, date := range d.Dates() {
				if _, err := s.attendance.UpsertStatus(ctx, d.EmployeeID, date, attendance.StatusLeave); err != nil {
					return err
				}
			}
		}

		decided = d
		return nil
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) || errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	if s.metrics != nil {
		s.metrics.LeaveDecisions.WithLabelValues(string(decided.Status)).Inc()
	}
	slog.Info("Leave request decided",
		"request_id", decided.ID,
		"employee_id", decided.EmployeeID,
		"status", decided.Status,
		"decided_by", deciderID,
		"days", decided.Days(),
	)

	return leave.NewLeaveRequestResponse(decided), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(requests), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(requests), nil
}
