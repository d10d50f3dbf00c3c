package payrollerrors

import (
	"net/http"

	"krishr/internal/shared/apperror"
)

var (
	ErrPreviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll preview not found",
		http.StatusNotFound,
	)
	ErrPreviewNameTaken = apperror.New(
		apperror.CodeConflict,
		"A payroll preview with this name already exists",
		http.StatusConflict,
	)
	ErrEmployeeNotInPreview = apperror.New(
		apperror.CodeNotFound,
		"Employee is not part of this payroll preview",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyInPreview = apperror.New(
		apperror.CodeConflict,
		"Employee is already part of this payroll preview",
		http.StatusConflict,
	)
	ErrPreviewNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"An approved payroll preview can no longer be edited",
		http.StatusConflict,
	)
	ErrPayrollEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found in this organization",
		http.StatusNotFound,
	)
	ErrInvalidPayrollPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Payroll period must be two valid dates with the end not before the start",
		http.StatusUnprocessableEntity,
	)
)
