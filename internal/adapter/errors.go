package adapter

import "errors"

// Errors mapped from chronos API responses. The server's {error} message is
// appended to the wrapped error.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotAuthenticated    = errors.New("not signed in")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrMissingToken        = errors.New("server did not return a session token")
)
