package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

// classify maps Postgres constraint violations onto the domain error
// taxonomy. Anything else passes through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqe *pq.Error
	if !errors.As(err, &pqe) {
		return err
	}
	switch pqe.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w (%s)", domain.ErrDuplicate, pqe.Constraint)
	case "23503": // foreign_key_violation
		return fmt.Errorf("%w (%s)", domain.ErrForeignKey, pqe.Constraint)
	case "23502": // not_null_violation
		return fmt.Errorf("%w (%s)", domain.ErrRequired, pqe.Column)
	}
	return err
}
