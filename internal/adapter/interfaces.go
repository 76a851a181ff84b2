// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

// Package adapter is the client side of the chronos HTTP API.
//
// [ServerAdapter] hides the transport from the CLI. API failures are mapped
// to the sentinel errors in errors.go so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/michaelhessen/chronos/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to a chronos server on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the session token sent with later requests.
	SetToken(token string)

	// Token returns the current session token, or "".
	Token() string

	// Signup creates an account. It does not sign in.
	Signup(ctx context.Context, req models.SignupRequest) (models.PublicAccount, error)

	// Login verifies credentials and stores the returned session token.
	Login(ctx context.Context, creds models.Credentials) (models.Identity, error)

	// Session describes the current session. User is nil when the token is
	// missing, expired or rejected.
	Session(ctx context.Context) (models.SessionResponse, error)

	// Signout asks the server to drop the session and forgets the token.
	Signout(ctx context.Context) error

	// Version returns the server version. It requires a session.
	Version(ctx context.Context) (models.VersionResponse, error)
}
