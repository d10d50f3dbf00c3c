package leaveerrors

import (
	"net/http"

	"krishr/internal/shared/apperror"
)

var (
	ErrLeavePlanNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave plan not found",
		http.StatusNotFound,
	)
	ErrLeavePlanNameTaken = apperror.New(
		apperror.CodeConflict,
		"A leave plan with this name already exists",
		http.StatusConflict,
	)
	ErrLeaveBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"No leave balance exists for this employee and plan",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"Requested duration exceeds the remaining leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave application not found",
		http.StatusNotFound,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrApplicationNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Leave application has already been decided",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Leave dates must be a valid range with at least one weekday",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveDate = apperror.New(
		apperror.CodeInvalidInput,
		"Leave dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
