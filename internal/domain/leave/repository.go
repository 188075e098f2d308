package leave

import (
	"context"
	"time"
)

type LeaveRequestFilter struct {
	Status *LeaveRequestStatus
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Decide moves a PENDING request to status. Returns
	// ErrLeaveRequestAlreadyProcessed if the request is no longer pending and
	// ErrLeaveRequestNotFound if it does not exist.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, comment *string, decidedBy string, decidedAt time.Time) (LeaveRequest, error)

	// ListByEmployee returns the employee's requests, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// List returns requests joined with employee identity, newest first.
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// HasApprovedCovering reports whether an APPROVED request of the
	// employee covers date.
	HasApprovedCovering(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
