package organization

import (
	"errors"
	"strings"

	orgerrors "krishr/internal/organization/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return orgerrors.ErrOrganizationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_organization_name":
				return orgerrors.ErrOrganizationNameTaken
			case "uq_organization_email":
				return orgerrors.ErrOrganizationEmailTaken
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_organization_name") {
		return orgerrors.ErrOrganizationNameTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_organization_email") {
		return orgerrors.ErrOrganizationEmailTaken
	}

	return err
}
