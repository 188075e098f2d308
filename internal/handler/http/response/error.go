package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

// kindStatus is checked in order; the first kind in err's chain wins.
var kindStatus = []struct {
	kind   error
	status int
}{
	{apperror.ErrValidation, http.StatusBadRequest},
	{apperror.ErrPrecondition, http.StatusBadRequest},
	{apperror.ErrNotFound, http.StatusNotFound},
	{apperror.ErrConflict, http.StatusConflict},
	{apperror.ErrUnauthorized, http.StatusUnauthorized},
	{apperror.ErrForbidden, http.StatusForbidden},
}

// HandleError maps domain errors to HTTP responses. The client sees the
// sentinel's own message; anything without a kind is logged and hidden
// behind a 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// a second check-in is a client mistake, not a store conflict
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		BadRequest(w, apperror.Message(err), nil)
		return
	}

	for _, ks := range kindStatus {
		if errors.Is(err, ks.kind) {
			Fail(w, ks.status, apperror.Message(err), nil)
			return
		}
	}

	slog.Error("Unhandled error", "error", err)
	Fail(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
}
