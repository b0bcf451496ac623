package departmenterrors

import (
	"net/http"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrDepartmentExists = apperror.New(
		apperror.CodeConflict,
		"Department with this name already exists",
		http.StatusConflict,
	)
)
