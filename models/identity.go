package models

import "time"

// Identity is the set of claims carried by a session. It is a read-only
// projection of an [Account] taken at authentication time.
type Identity struct {
	SubjectID   string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	DisplayName string `json:"name"`
}

// Session is a decoded (or freshly issued) session token.
type Session struct {
	Identity

	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Token is the signed compact form sent to the client.
	Token string `json:"-"`
}

// Age returns how long ago the session was issued relative to now.
func (s Session) Age(now time.Time) time.Duration {
	return now.Sub(s.IssuedAt)
}

// Decision is the outcome of an authorization check for one request path.
// When Allow is false, RedirectTo names the path the caller must be sent to.
type Decision struct {
	Allow      bool
	RedirectTo string
}
