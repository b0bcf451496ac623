package attendanceerrors

import (
	"net/http"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"Employee already has an open attendance entry",
		http.StatusConflict,
	)

	ErrNoOpenAttendance = apperror.New(
		apperror.CodeInvalidState,
		"Employee has no open attendance entry to check out",
		http.StatusConflict,
	)

	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance entry not found",
		http.StatusNotFound,
	)
)
