package leave

import (
	"time"

	"github.com/teambition/rrule-go"
)

type LeaveKind string

const (
	LeaveKindPaid   LeaveKind = "PAID"
	LeaveKindSick   LeaveKind = "SICK"
	LeaveKindUnpaid LeaveKind = "UNPAID"
)

func (k LeaveKind) IsValid() bool {
	return k == LeaveKindPaid || k == LeaveKindSick || k == LeaveKindUnpaid
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected LeaveRequestStatus = "REJECTED"
)

// IsTerminal reports whether the request has already been decided.
func (s LeaveRequestStatus) IsTerminal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

// IsDecision reports whether s is a status an admin may decide to.
func (s LeaveRequestStatus) IsDecision() bool {
	return s.IsTerminal()
}

// LeaveRequest entity. FromDate and ToDate are inclusive date-only values.
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	Type         LeaveKind
	FromDate     time.Time
	ToDate       time.Time
	Reason       string
	Status       LeaveRequestStatus
	AdminComment *string
	DecidedBy    *string
	DecidedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeName  *string
	EmployeeEmail *string
}

// Days is the inclusive length of the requested range in calendar days.
func (r LeaveRequest) Days() int {
	if r.ToDate.Before(r.FromDate) {
		return 0
	}
	return int(r.ToDate.Sub(r.FromDate).Hours()/24) + 1
}

// Dates expands the range into every calendar date from FromDate to ToDate.
func (r LeaveRequest) Dates() []time.Time {
	if r.ToDate.Before(r.FromDate) {
		return nil
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: r.FromDate,
		Until:   r.ToDate,
	})
	if err != nil {
		return nil
	}
	return rule.All()
}

// Covers reports whether date falls within the inclusive range.
func (r LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(r.FromDate) && !date.After(r.ToDate)
}
