package attendance

import (
	"context"
	"io"
	"time"
)

// AttendanceService defines the attendance ledger operations
type AttendanceService interface {
	// CheckIn opens today's record for the employee.
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// CheckOut closes today's record and derives its status.
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// GetMyAttendance returns the employee's records, newest first.
	GetMyAttendance(ctx context.Context, employeeID string) ([]AttendanceResponse, error)

	// ListAttendance returns all records with employee identity (admin).
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// ExportAttendance writes the ListAttendance rows as an xlsx workbook.
	ExportAttendance(ctx context.Context, filter AttendanceFilter, w io.Writer) error

	// UpsertStatus is the idempotent write used by the leave workflow.
	UpsertStatus(ctx context.Context, employeeID string, date time.Time, status Status) (Attendance, error)
}
