package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: store}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	now := r.store.now()
	req.ID = uuid.NewString()
	req.CreatedAt, req.UpdatedAt = now, now
	req.EmployeeName, req.EmployeeEmail = nil, nil
	r.store.data.leaveRequests[req.ID] = req
	return req, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	req, ok := r.store.data.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepository) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, comment *string, decidedBy string, decidedAt time.Time) (leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	req, ok := r.store.data.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	at := decidedAt
	by := decidedBy
	req.Status = status
	req.AdminComment = comment
	req.DecidedBy = &by
	req.DecidedAt = &at
	req.UpdatedAt = r.store.now()
	r.store.data.leaveRequests[id] = req
	return req, nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	requests := make([]leave.LeaveRequest, 0)
	for _, req := range r.store.data.leaveRequests {
		if req.EmployeeID == employeeID {
			requests = append(requests, req)
		}
	}
	sortLeaveRequests(requests)
	return requests, nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	names := make(map[string][2]string, len(r.store.data.users))
	for _, u := range r.store.data.users {
		names[u.EmployeeID] = [2]string{u.Name, u.Email}
	}

	requests := make([]leave.LeaveRequest, 0)
	for _, req := range r.store.data.leaveRequests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if identity, ok := names[req.EmployeeID]; ok {
			name, email := identity[0], identity[1]
			req.EmployeeName, req.EmployeeEmail = &name, &email
		}
		requests = append(requests, req)
	}
	sortLeaveRequests(requests)
	return requests, nil
}

func (r *leaveRequestRepository) HasApprovedCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	defer r.store.lock(ctx)()

	for _, req := range r.store.data.leaveRequests {
		if req.EmployeeID == employeeID && req.Status == leave.LeaveRequestStatusApproved && req.Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

// sortLeaveRequests orders by creation time descending.
func sortLeaveRequests(requests []leave.LeaveRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID > requests[j].ID
	})
}
