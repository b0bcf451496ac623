package employeeerrors

import (
	"net/http"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmailAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"An employee with this email already exists",
		http.StatusConflict,
	)

	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced department or role does not exist",
		http.StatusBadRequest,
	)
)
