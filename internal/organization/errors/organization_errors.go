package orgerrors

import (
	"net/http"

	"krishr/internal/shared/apperror"
)

var (
	ErrOrganizationNotFound = apperror.New(
		apperror.CodeNotFound,
		"organization not found",
		http.StatusNotFound,
	)
	ErrOrganizationNameTaken = apperror.New(
		apperror.CodeConflict,
		"an organization with this name already exists",
		http.StatusConflict,
	)
	ErrOrganizationEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an organization with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrUnknownUniqueField = apperror.New(
		apperror.CodeInternalError,
		"unknown uniqueness field",
		http.StatusInternalServerError,
	)
)
