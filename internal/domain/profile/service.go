package profile

import "context"

// ProfileService assembles read-only views over the attendance, leave and
// payroll stores.
type ProfileService interface {
	// GetSummary returns the caller's profile with attendance, leave and
	// payroll tallies.
	GetSummary(ctx context.Context, userID string) (SummaryResponse, error)

	// GetEmployeeRecord returns profile, attendance and leave history for an
	// employee code.
	GetEmployeeRecord(ctx context.Context, employeeID string) (EmployeeRecordResponse, error)
}
