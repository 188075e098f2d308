// Package apperror holds the error kinds shared by every domain.
// Domain sentinels wrap one of these so handlers and callers can branch on the
// kind without knowing each domain's errors.
package apperror

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrPrecondition = errors.New("precondition failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a domain sentinel. Its text is the client-facing message and it
// unwraps to its kind.
type Error struct {
	kind error
	msg  string
}

// New declares a sentinel of the given kind.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Message returns the text of the first sentinel in err's chain, dropping any
// wrapping context added on the way up. Other errors return err.Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return err.Error()
}
