package errors

import (
	"errors"
	"net/http"
)

// ToHTTPStatus maps an application error to the status code the API
// layer should answer with.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeConflict, CodeRegistrationClosed:
		return http.StatusConflict
	case CodeInvalidInput, CodeScheduleInvalid, CodeEntryFeeInvalid:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
