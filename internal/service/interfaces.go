package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/michaelhessen/chronos/models"
)

// SignupService creates accounts.
type SignupService interface {
	// Signup validates req, hashes the password and stores the account.
	// It returns the account without password material.
	Signup(ctx context.Context, req models.SignupRequest) (models.PublicAccount, error)
}

// Authenticator verifies credentials.
type Authenticator interface {
	// Authenticate returns the identity for a matching email and password.
	// Every credential failure is ErrInvalidCredentials.
	Authenticate(ctx context.Context, creds models.Credentials) (models.Identity, error)
}

// SessionIssuer encodes and decodes stateless session tokens.
type SessionIssuer interface {
	Issue(ctx context.Context, identity models.Identity) (models.Session, error)
	Decode(ctx context.Context, token string) (models.Session, error)
	Renew(ctx context.Context, token string) (models.Session, error)
}

// Gate decides per request path whether a session is required.
type Gate interface {
	Authorize(path string, authenticated bool) models.Decision
	AuthPage(authenticated bool) models.Decision
}

// AppInfoService exposes version information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// IDGenerator produces account identifiers.
type IDGenerator interface {
	Generate() string
}
