package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrVersionConflict is returned when a conditional write lost to a
// concurrent writer, or a unique constraint rejected a second open row.
var ErrVersionConflict = errors.New("version conflict")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
