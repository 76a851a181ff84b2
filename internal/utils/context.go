// Package utils holds small helpers shared across chronos packages: context
// keys, JSON response writing, the resty client wrapper and ID generation.
package utils

import (
	"context"

	"github.com/michaelhessen/chronos/models"
)

// contextKey is a private type for context keys, so keys from other packages
// cannot collide with ours.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// SessionCtxKey stores the decoded session of an authenticated request.
var SessionCtxKey = contextKey("session")

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, SessionCtxKey, session)
}

// GetSessionFromContext returns the session stored by WithSession.
// ok is false when the request is not authenticated.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(models.Session)
	return session, ok
}
