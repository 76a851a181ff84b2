package models

import "time"

// SignupRequest is the body of POST /api/signup. Fields other than these
// four are ignored.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Credentials is the body of the credential verification endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message string        `json:"message"`
	User    PublicAccount `json:"user"`
}

// LoginResponse is returned after successful credential verification.
type LoginResponse struct {
	User Identity `json:"user"`
}

// SessionResponse describes the current session. Both fields are omitted
// when the caller is not authenticated.
type SessionResponse struct {
	User    *Identity  `json:"user,omitempty"`
	Expires *time.Time `json:"expires,omitempty"`
}

// SignoutResponse tells the client where to go after signing out.
type SignoutResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
