package appraisalerrors

import (
	"net/http"

	"krishr/internal/shared/apperror"
)

var (
	ErrAppraisalNotFound = apperror.New(
		apperror.CodeNotFound,
		"Appraisal not found",
		http.StatusNotFound,
	)
	ErrEmployeeAppraisalNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee appraisal not found",
		http.StatusNotFound,
	)
	ErrAppraisalAlreadySubmitted = apperror.New(
		apperror.CodeInvalidState,
		"This appraisal has already been submitted",
		http.StatusConflict,
	)
	ErrQuestionNotInAppraisal = apperror.New(
		apperror.CodeInvalidInput,
		"A response references a question outside this appraisal",
		http.StatusBadRequest,
	)
)
