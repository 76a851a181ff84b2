package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/michaelhessen/chronos/internal/crypto"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/metrics"
	"github.com/michaelhessen/chronos/internal/store"
	"github.com/michaelhessen/chronos/models"
)

// dummyPassword is hashed once and verified against whenever there is no
// real digest, so unknown emails cost the same bcrypt work as known ones.
const dummyPassword = "chronos-dummy-password"

type authenticator struct {
	// accounts is read by email on every attempt.
	accounts store.AccountRepository

	// hasher verifies the presented password against the stored digest.
	hasher crypto.PasswordHasher

	// dummyMu guards dummyDigest, computed on first need.
	dummyMu     sync.Mutex
	dummyDigest string

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewAuthenticator wires an [Authenticator].
func NewAuthenticator(accounts store.AccountRepository, hasher crypto.PasswordHasher, m *metrics.Metrics, logger *logger.Logger) Authenticator {
	return &authenticator{
		accounts: accounts,
		hasher:   hasher,
		metrics:  m,
		logger:   logger,
	}
}

// Authenticate checks creds. Credential failures of every kind return
// ErrInvalidCredentials; store and digest faults return an error wrapping
// ErrAuthenticationFault. The two are logged under different auth_event
// values.
func (a *authenticator) Authenticate(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	if creds.Email == "" || creds.Password == "" {
		return models.Identity{}, a.invalid(ctx, "missing_field")
	}

	account, err := a.accounts.FindAccountByEmail(ctx, creds.Email)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		a.burnVerify(ctx, creds.Password)
		return models.Identity{}, a.invalid(ctx, "unknown_email")
	case err != nil:
		return models.Identity{}, a.fault(ctx, fmt.Errorf("looking up account: %w", err))
	}

	if !account.HasPassword() {
		a.burnVerify(ctx, creds.Password)
		return models.Identity{}, a.invalid(ctx, "no_password")
	}

	ok, err := a.hasher.Verify(ctx, creds.Password, account.PasswordHash)
	if err != nil {
		return models.Identity{}, a.fault(ctx, fmt.Errorf("verifying password: %w", err))
	}
	if !ok {
		return models.Identity{}, a.invalid(ctx, "wrong_password")
	}

	identity := account.Identity()
	if identity.DisplayName == "" {
		identity.DisplayName = DisplayName(account.Email, account.FirstName, account.LastName)
	}

	a.metrics.RecordLogin(metrics.ResultOK)
	logger.FromContext(ctx).Info().
		Str(logger.AuthEventField, "login_ok").
		Str("account_id", identity.SubjectID).
		Msg("credentials accepted")

	return identity, nil
}

// burnVerify spends one verification on the dummy digest. Its outcome is
// irrelevant.
func (a *authenticator) burnVerify(ctx context.Context, password string) {
	digest := a.dummy(ctx)
	if digest == "" {
		return
	}
	_, _ = a.hasher.Verify(ctx, password, digest)
}

func (a *authenticator) dummy(ctx context.Context) string {
	a.dummyMu.Lock()
	defer a.dummyMu.Unlock()

	if a.dummyDigest == "" {
		digest, err := a.hasher.Hash(ctx, dummyPassword)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*authenticator.dummy").Msg("dummy digest unavailable")
			return ""
		}
		a.dummyDigest = digest
	}

	return a.dummyDigest
}

func (a *authenticator) invalid(ctx context.Context, reason string) error {
	a.metrics.RecordLogin(metrics.ResultInvalid)
	logger.FromContext(ctx).Info().
		Str(logger.AuthEventField, "login_invalid").
		Str("reason", reason).
		Msg("credentials rejected")

	return ErrInvalidCredentials
}

func (a *authenticator) fault(ctx context.Context, err error) error {
	a.metrics.RecordLogin(metrics.ResultFault)
	logger.FromContext(ctx).Err(err).
		Str(logger.AuthEventField, "login_fault").
		Str("func", "*authenticator.Authenticate").
		Msg("authentication fault")

	return fmt.Errorf("%w: %w", ErrAuthenticationFault, err)
}
