package leave

import (
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

// ========== REQUEST DTOs ==========

type ApplyLeaveRequest struct {
	Type     string `json:"type" validate:"required,oneof=PAID SICK UNPAID"`
	FromDate string `json:"fromDate" validate:"required,date"`
	ToDate   string `json:"toDate" validate:"required,date"`
	Reason   string `json:"reason" validate:"max=500"`

	// Parsed by Validate
	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	errs := validator.Struct(r)
	if len(errs) > 0 {
		return errs
	}

	from, _ := clock.ParseDate(r.FromDate)
	to, _ := clock.ParseDate(r.ToDate)
	if from.After(to) {
		return ErrInvalidDateRange
	}
	r.From, r.To = from, to
	return nil
}

type DecideLeaveRequest struct {
	Status       string  `json:"status"`
	AdminComment *string `json:"adminComment,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	status := LeaveRequestStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
	if !status.IsDecision() {
		return ErrInvalidDecision
	}
	r.Status = string(status)

	if r.AdminComment != nil && len(*r.AdminComment) > 500 {
		return validator.ValidationErrors{{
			Field:   "adminComment",
			Message: "adminComment must not exceed 500 characters",
		}}
	}
	return nil
}

type ListLeaveRequestQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

func (q *ListLeaveRequestQuery) Validate() error {
	q.Status = strings.ToUpper(strings.TrimSpace(q.Status))
	if errs := validator.Struct(q); len(errs) > 0 {
		return errs
	}
	return nil
}

func (q *ListLeaveRequestQuery) ToFilter() LeaveRequestFilter {
	if q.Status == "" {
		return LeaveRequestFilter{}
	}
	status := LeaveRequestStatus(q.Status)
	return LeaveRequestFilter{Status: &status}
}

// ========== RESPONSE DTOs ==========

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	Name         *string    `json:"name,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Type         string     `json:"type"`
	FromDate     string     `json:"fromDate"`
	ToDate       string     `json:"toDate"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminComment *string    `json:"adminComment,omitempty"`
	DecidedBy    *string    `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Name:         r.EmployeeName,
		Email:        r.EmployeeEmail,
		Type:         string(r.Type),
		FromDate:     clock.FormatDate(r.FromDate),
		ToDate:       clock.FormatDate(r.ToDate),
		Days:         r.Days(),
		Reason:       r.Reason,
		Status:       string(r.Status),
		AdminComment: r.AdminComment,
		DecidedBy:    r.DecidedBy,
		DecidedAt:    r.DecidedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func NewLeaveRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, NewLeaveRequestResponse(r))
	}
	return responses
}
