package employee

import (
	"errors"

	employeeerrors "krishr/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates postgres unique violations into the
// sentinel errors callers branch on. Anything else passes through.
func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code != "23505" {
		return err
	}

	switch pgErr.ConstraintName {
	case "uq_employee_org_email":
		return employeeerrors.ErrEmployeeEmailTaken
	case "uq_employee_number":
		return employeeerrors.ErrEmployeeNumberTaken
	default:
		return err
	}
}
