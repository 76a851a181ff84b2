// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package models

import "time"

// Account is the credential store record of a chronos user.
// PasswordHash is a bcrypt digest and never leaves the server; use
// [Account.Public] or [Account.Identity] for anything sent to a client.
type Account struct {
	// ID is the opaque account identifier (UUIDv7), assigned at creation.
	ID string `json:"id"`

	// Email is unique across accounts and compared exactly as stored.
	Email string `json:"email"`

	// PasswordHash is empty for accounts provisioned without a password.
	PasswordHash string `json:"-"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	// DisplayName is computed once at signup and stored.
	DisplayName string `json:"displayName"`

	CreatedAt time.Time `json:"createdAt"`
}

// HasPassword reports whether a password digest is stored for the account.
func (a Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// Public returns the client-safe projection of the account.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:          a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DisplayName: a.DisplayName,
		CreatedAt:   a.CreatedAt,
	}
}

// Identity returns the identity claims derived from the account.
func (a Account) Identity() Identity {
	return Identity{
		SubjectID:   a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DisplayName: a.DisplayName,
	}
}

// PublicAccount is an [Account] without password material. It is what the
// signup endpoint returns.
type PublicAccount struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}
