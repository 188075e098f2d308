package postgresql

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// uniqueViolationOn reports whether err is a unique violation, returning the
// name of the constraint or index that was hit.
func uniqueViolationOn(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// validID filters ids that would make postgres reject a uuid comparison.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
