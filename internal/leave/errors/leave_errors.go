package leaveerrors

import (
	"net/http"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave balance not found for employee",
		http.StatusNotFound,
	)

	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been decided",
		http.StatusConflict,
	)

	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"Insufficient leave balance",
		http.StatusConflict,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"From date must not be after to date",
		http.StatusBadRequest,
	)
)
