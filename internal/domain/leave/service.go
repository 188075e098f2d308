package leave

import "context"

type LeaveService interface {
	// Apply creates a PENDING request for the employee.
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// Decide approves or rejects a pending request. Approval marks every date
	// in the range as LEAVE in the attendance ledger.
	Decide(ctx context.Context, requestID string, deciderID string, req DecideLeaveRequest) (LeaveRequestResponse, error)

	ListMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListAll(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
}
