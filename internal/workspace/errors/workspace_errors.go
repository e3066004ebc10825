package workspaceerrors

import (
	"net/http"

	"worknest/internal/shared/apperror"
)

var (
	ErrWorkspaceNotFound = apperror.New(
		apperror.CodeNotFound,
		"workspace not found",
		http.StatusNotFound,
	)
	ErrInvalidWorkspaceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid workspace id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"kind must be desk or meeting-room",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be active, maintenance or inactive",
		http.StatusBadRequest,
	)
	ErrInvalidCapacity = apperror.New(
		apperror.CodeInvalidInput,
		"capacity must be at least 1",
		http.StatusBadRequest,
	)
)
