package profile

import (
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// ========== SELF SUMMARY (GET /users/me) ==========

// SummaryResponse is the composite view of one employee. It is never stored.
type SummaryResponse struct {
	Profile    user.UserResponse        `json:"profile"`
	Attendance AttendanceTally          `json:"attendance"`
	Leaves     LeaveTally               `json:"leaves"`
	Payroll    *PayrollSnapshotResponse `json:"payroll"`
}

// AttendanceTally counts records per status.
type AttendanceTally struct {
	Present int `json:"present"`
	HalfDay int `json:"halfDay"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
}

// LeaveTally sums approved leave days per bucket and counts pending requests.
type LeaveTally struct {
	PaidUsed   int `json:"paidUsed"`
	UnpaidUsed int `json:"unpaidUsed"`
	Pending    int `json:"pending"`
}

type PayrollSnapshotResponse struct {
	MonthlyWage decimal.Decimal `json:"monthlyWage"`
	NetSalary   decimal.Decimal `json:"netSalary"`
}

// ========== ADMIN EMPLOYEE RECORD ==========

type EmployeeRecordResponse struct {
	Profile    user.UserResponse               `json:"profile"`
	Attendance []attendance.AttendanceResponse `json:"attendance"`
	Leaves     []leave.LeaveRequestResponse    `json:"leaves"`
}

// TallyAttendance counts records per status.
func TallyAttendance(records []attendance.Attendance) AttendanceTally {
	var t AttendanceTally
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			t.Present++
		case attendance.StatusHalfDay:
			t.HalfDay++
		case attendance.StatusAbsent:
			t.Absent++
		case attendance.StatusLeave:
			t.Leave++
		}
	}
	return t
}

// TallyLeaves sums the inclusive day span of APPROVED requests. SICK days
// count towards the unpaid bucket.
func TallyLeaves(requests []leave.LeaveRequest) LeaveTally {
	var t LeaveTally
	for _, r := range requests {
		switch r.Status {
		case leave.LeaveRequestStatusPending:
			t.Pending++
		case leave.LeaveRequestStatusApproved:
			if r.Type == leave.LeaveKindPaid {
				t.PaidUsed += r.Days()
			} else {
				t.UnpaidUsed += r.Days()
			}
		}
	}
	return t
}
