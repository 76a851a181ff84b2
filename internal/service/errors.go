package service

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every [*ValidationError].
var ErrValidation = errors.New("validation failed")

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// Signup and authentication errors.
var (
	// ErrDuplicateEmail is returned by signup when the email is taken, both
	// when the pre-check finds it and when the store rejects the insert.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrInvalidCredentials is the single caller-visible credential failure:
	// missing field, unknown email, account without password, wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAuthenticationFault marks an internal failure during authentication
	// (store unreachable, corrupt digest). It is logged separately from
	// ErrInvalidCredentials but rendered the same way.
	ErrAuthenticationFault = errors.New("authentication fault")
)

// Session errors. Both concrete reasons wrap ErrSessionInvalid.
var (
	ErrSessionInvalid  = errors.New("session is invalid")
	ErrSessionTampered = fmt.Errorf("%w: signature or format rejected", ErrSessionInvalid)
	ErrSessionExpired  = fmt.Errorf("%w: expired", ErrSessionInvalid)

	ErrSessionIssue = errors.New("failed to issue session")
)

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNoSessionSecret       = errors.New("session secret is not specified")
)
