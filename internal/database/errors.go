package database

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
)

const uniqueViolation = "23505"

// MapError converts a driver error into the application taxonomy. Unique
// violations become validation errors so a racing duplicate still reads as a
// client error.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperror.NewValidation("%s already exists", constraintSubject(pqErr))
	}
	return errors.Wrap(err, op)
}

func constraintSubject(e *pq.Error) string {
	if e.Constraint != "" {
		return e.Constraint
	}
	if e.Table != "" {
		return e.Table
	}
	return "record"
}
