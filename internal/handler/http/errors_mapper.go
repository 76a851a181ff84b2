package http

import (
	"errors"
	"net/http"

	"github.com/michaelhessen/chronos/internal/service"
)

const (
	msgInvalidJSON   = "invalid JSON body"
	msgSignupFailed  = "an error occurred while creating the account"
	msgInternalError = "internal server error"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:          http.StatusBadRequest,
	service.ErrDuplicateEmail:      http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrAuthenticationFault: http.StatusUnauthorized,
	service.ErrSessionInvalid:      http.StatusUnauthorized,
	service.ErrSessionIssue:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// signupErrorMessage returns the text shown to the caller for a failed
// signup. Faults get a generic message so store and hash errors stay
// server side.
func signupErrorMessage(err error) string {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Msg
	case errors.Is(err, service.ErrDuplicateEmail):
		return service.ErrDuplicateEmail.Error()
	default:
		return msgSignupFailed
	}
}
