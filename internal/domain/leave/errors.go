package leave

import "github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound         = apperror.New(apperror.ErrNotFound, "leave request not found")
	ErrLeaveRequestAlreadyProcessed = apperror.New(apperror.ErrConflict, "leave request already processed")
	ErrInvalidDateRange             = apperror.New(apperror.ErrValidation, "fromDate must not be after toDate")
	ErrInvalidDecision              = apperror.New(apperror.ErrValidation, "status must be APPROVED or REJECTED")
)
