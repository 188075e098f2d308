package attendance

import (
	"context"
	"time"
)

// AttendanceFilter narrows admin listings. Zero values mean "no filter".
type AttendanceFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

// AttendanceRepository stores attendance records. The store enforces one record
// per (employee, date); every write path is either a plain insert that fails
// with ErrAlreadyCheckedIn on conflict or an upsert.
type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrAlreadyCheckedIn if a record
	// already exists for the same employee and date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// CloseDay sets check-out and status on a record that is checked in and
	// not yet checked out. Returns ErrAlreadyCheckedOut if the record was
	// closed concurrently.
	CloseDay(ctx context.Context, id string, checkOut time.Time, status Status) (Attendance, error)

	// UpsertStatus creates the record or overwrites its status, leaving
	// check-in and check-out untouched.
	UpsertStatus(ctx context.Context, employeeID string, date time.Time, status Status) (Attendance, error)

	// CreateIfAbsent inserts a record with the given status only when none
	// exists. Reports whether a record was created.
	CreateIfAbsent(ctx context.Context, employeeID string, date time.Time, status Status) (bool, error)

	// ListByEmployee returns the employee's records, newest date first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)

	// List returns records joined with employee identity, newest date first.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
}
