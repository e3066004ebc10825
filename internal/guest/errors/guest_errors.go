package guesterrors

import (
	"net/http"

	"worknest/internal/shared/apperror"
)

var (
	ErrInvalidHostID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid host user id",
		http.StatusBadRequest,
	)
	ErrInvalidVisitDate = apperror.New(
		apperror.CodeInvalidInput,
		"visit_date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrVisitDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"visit_date must not be in the past",
		http.StatusBadRequest,
	)
)
