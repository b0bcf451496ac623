package clienterrors

import (
	"net/http"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

var (
	ErrClientExists = apperror.New(
		apperror.CodeConflict,
		"a client with this company name or admin email is already registered",
		http.StatusConflict,
	)
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"client not found",
		http.StatusNotFound,
	)
	ErrRegistryNotInitialized = apperror.New(
		apperror.CodeAllocationFailed,
		"allocation counter is missing; registry is not initialized",
		http.StatusInternalServerError,
	)
	ErrAllocationFailed = apperror.New(
		apperror.CodeAllocationFailed,
		"failed to allocate a client id",
		http.StatusInternalServerError,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"no fields provided to update",
		http.StatusBadRequest,
	)
	ErrNotRepairable = apperror.New(
		apperror.CodeInvalidState,
		"client provisioning is already complete",
		http.StatusBadRequest,
	)
)
