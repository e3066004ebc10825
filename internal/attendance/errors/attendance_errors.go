package attendanceerrors

import (
	"net/http"

	"worknest/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidWorkMode = apperror.New(
		apperror.CodeInvalidInput,
		"work_mode must be office or remote",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in for today",
		http.StatusConflict,
	)
	ErrNoCheckInFound = apperror.New(
		apperror.CodeNotFound,
		"no check-in found for today",
		http.StatusNotFound,
	)
)
