package bookingerrors

import (
	"net/http"

	"worknest/internal/shared/apperror"
)

var (
	ErrInvalidBookingID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid booking id",
		http.StatusBadRequest,
	)
	ErrInvalidWorkspaceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid workspace id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_at must be before end_at",
		http.StatusBadRequest,
	)
	ErrBookingNotFound = apperror.New(
		apperror.CodeNotFound,
		"booking not found",
		http.StatusNotFound,
	)
	ErrWorkspaceNotFound = apperror.New(
		apperror.CodeNotFound,
		"workspace not found",
		http.StatusNotFound,
	)
	ErrWorkspaceUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"workspace is not available for booking",
		http.StatusBadRequest,
	)
	ErrBookingNotConfirmed = apperror.New(
		apperror.CodeInvalidState,
		"booking is not in confirmed status",
		http.StatusBadRequest,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"booking has no check-in to complete",
		http.StatusBadRequest,
	)
	ErrOutsideBookingWindow = apperror.New(
		apperror.CodeInvalidState,
		"check-in is only allowed inside the booking window",
		http.StatusBadRequest,
	)
)
