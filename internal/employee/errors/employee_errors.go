package employeeerrors

import (
	"net/http"

	"krishr/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists in the organization",
		http.StatusConflict,
	)
	ErrEmployeeNumberTaken = apperror.New(
		apperror.CodeConflict,
		"employee number already exists",
		http.StatusConflict,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
