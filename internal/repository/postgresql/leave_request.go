package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `id, employee_id, type, from_date, to_date, reason, status,
	admin_comment, decided_by, decided_at, created_at, updated_at`

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

func scanLeaveRequest(row pgx.Row, extra ...any) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	dest := append([]any{
		&lr.ID, &lr.EmployeeID, &lr.Type, &lr.FromDate, &lr.ToDate, &lr.Reason, &lr.Status,
		&lr.AdminComment, &lr.DecidedBy, &lr.DecidedAt, &lr.CreatedAt, &lr.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.FromDate, lr.ToDate = lr.FromDate.UTC(), lr.ToDate.UTC()
	return lr, nil
}

func collectLeaveRequests(rows pgx.Rows, joined bool) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var (
			lr          leave.LeaveRequest
			err         error
			name, email *string
		)
		if joined {
			lr, err = scanLeaveRequest(rows, &name, &email)
			lr.EmployeeName, lr.EmployeeEmail = name, email
		} else {
			lr, err = scanLeaveRequest(rows)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, type, from_date, to_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, req.EmployeeID, req.Type, req.FromDate, req.ToDate, req.Reason, req.Status).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if !validID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// Decide implements leave.LeaveRequestRepository. Only a PENDING row matches
// the update, so two concurrent decisions cannot both succeed.
func (r *leaveRequestRepository) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, comment *string, decidedBy string, decidedAt time.Time) (leave.LeaveRequest, error) {
	if !validID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, admin_comment = $3, decided_by = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING ` + leaveRequestColumns

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, status, comment, decidedBy, decidedAt))
	if err == nil {
		return lr, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if !exists {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE employee_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows, false)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.type, lr.from_date, lr.to_date, lr.reason, lr.status,
		       lr.admin_comment, lr.decided_by, lr.decided_at, lr.created_at, lr.updated_at,
		       u.name, u.email
		FROM leave_requests lr
		LEFT JOIN users u ON u.employee_id = lr.employee_id
	`
	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += " WHERE lr.status = $1"
	}
	query += " ORDER BY lr.created_at DESC, lr.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows, true)
}

// HasApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) HasApprovedCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status = 'APPROVED' AND from_date <= $2 AND to_date >= $2
		)
	`
	var covered bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&covered); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}
	return covered, nil
}
