package attendance

import "github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = apperror.New(apperror.ErrConflict, "already checked in today")
	ErrCheckInRequired    = apperror.New(apperror.ErrPrecondition, "check-in required first")
	ErrAlreadyCheckedOut  = apperror.New(apperror.ErrPrecondition, "already checked out")
	ErrAttendanceNotFound = apperror.New(apperror.ErrNotFound, "attendance record not found")
	ErrInvalidStatus      = apperror.New(apperror.ErrValidation, "invalid attendance status")
)
