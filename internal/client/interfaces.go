// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package client

//go:generate mockgen -source=interfaces.go -destination=../mock/token_store_mock.go -package=mock

// TokenStore persists the session token between CLI invocations.
type TokenStore interface {
	// Load returns "" when no token is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}
