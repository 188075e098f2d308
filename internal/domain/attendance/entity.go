package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
)

// FullDayHours is the minimum worked time for a PRESENT day.
const FullDayHours = 6.0

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// Attendance is the single record of an employee for one calendar date.
// Date is a date-only value (midnight UTC).
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName  *string
	EmployeeEmail *string
}

func (a Attendance) IsCheckedIn() bool {
	return a.CheckIn != nil
}

func (a Attendance) IsCheckedOut() bool {
	return a.CheckOut != nil
}

// HoursWorked returns the span between check-in and check-out, or false when
// the day is still open.
func (a Attendance) HoursWorked() (float64, bool) {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0, false
	}
	return a.CheckOut.Sub(*a.CheckIn).Hours(), true
}

// StatusForHours derives the closed-day status from hours worked.
func StatusForHours(hours float64) Status {
	if hours >= FullDayHours {
		return StatusPresent
	}
	return StatusHalfDay
}
