package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/michaelhessen/chronos/models"
)

// AccountRepository is the credential store. Email is unique across all
// accounts; a concurrent second insert of the same email must fail with
// [ErrEmailAlreadyExists] regardless of any earlier existence check.
type AccountRepository interface {
	// CreateAccount persists account and returns it with CreatedAt filled in.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccountByEmail returns the account whose email equals email
	// exactly, or [ErrAccountNotFound].
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
}

// ErrorClassificator decides how a driver error should be treated by the
// repository layer.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}
