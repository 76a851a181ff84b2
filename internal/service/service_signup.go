package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/michaelhessen/chronos/internal/crypto"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/metrics"
	"github.com/michaelhessen/chronos/internal/store"
	"github.com/michaelhessen/chronos/models"
)

// MinPasswordLength is counted in characters. There is no upper bound.
const MinPasswordLength = 8

// signupService is the concrete implementation of [SignupService].
type signupService struct {
	// accounts is the credential store written to on success.
	accounts store.AccountRepository

	// hasher turns the plaintext password into a digest.
	hasher crypto.PasswordHasher

	// ids assigns account identifiers.
	ids IDGenerator

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewSignupService wires a [SignupService].
func NewSignupService(
	accounts store.AccountRepository,
	hasher crypto.PasswordHasher,
	ids IDGenerator,
	m *metrics.Metrics,
	logger *logger.Logger,
) SignupService {
	return &signupService{
		accounts: accounts,
		hasher:   hasher,
		ids:      ids,
		metrics:  m,
		logger:   logger,
	}
}

// Signup runs the signup rules in order:
//  1. email and password present
//  2. password at least MinPasswordLength characters
//  3. email not already taken
//  4. hash, compute the display name, insert
//
// A unique violation on insert means a concurrent signup won the race and is
// reported as ErrDuplicateEmail, same as the pre-check.
func (s *signupService) Signup(ctx context.Context, req models.SignupRequest) (models.PublicAccount, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		s.metrics.RecordSignup(metrics.ResultRejected)
		return models.PublicAccount{}, newValidationError("email and password required")
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		s.metrics.RecordSignup(metrics.ResultRejected)
		return models.PublicAccount{}, newValidationError("password too short")
	}

	_, err := s.accounts.FindAccountByEmail(ctx, req.Email)
	switch {
	case err == nil:
		s.duplicate(ctx, "precheck")
		return models.PublicAccount{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrAccountNotFound):
		s.metrics.RecordSignup(metrics.ResultFault)
		log.Err(err).Str("func", "*signupService.Signup").Msg("existing account lookup failed")
		return models.PublicAccount{}, fmt.Errorf("checking existing account: %w", err)
	}

	digest, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		s.metrics.RecordSignup(metrics.ResultFault)
		log.Err(err).Str("func", "*signupService.Signup").Msg("password hashing failed")
		return models.PublicAccount{}, fmt.Errorf("hashing password: %w", err)
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	account, err := s.accounts.CreateAccount(ctx, models.Account{
		ID:           s.ids.Generate(),
		Email:        req.Email,
		PasswordHash: digest,
		FirstName:    firstName,
		LastName:     lastName,
		DisplayName:  DisplayName(req.Email, firstName, lastName),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			s.duplicate(ctx, "insert")
			return models.PublicAccount{}, ErrDuplicateEmail
		}

		s.metrics.RecordSignup(metrics.ResultFault)
		log.Err(err).Str("func", "*signupService.Signup").Msg("account creation failed")
		return models.PublicAccount{}, fmt.Errorf("creating account: %w", err)
	}

	s.metrics.RecordSignup(metrics.ResultOK)
	log.Info().
		Str(logger.AuthEventField, "signup_ok").
		Str("account_id", account.ID).
		Msg("account created")

	return account.Public(), nil
}

func (s *signupService) duplicate(ctx context.Context, stage string) {
	s.metrics.RecordSignup(metrics.ResultDuplicate)
	logger.FromContext(ctx).Info().
		Str(logger.AuthEventField, "signup_duplicate").
		Str("stage", stage).
		Msg("email already registered")
}

// DisplayName is "first last" when both names are present, otherwise the
// first name, otherwise the email. Names are expected to be trimmed.
func DisplayName(email, firstName, lastName string) string {
	switch {
	case firstName != "" && lastName != "":
		return firstName + " " + lastName
	case firstName != "":
		return firstName
	default:
		return email
	}
}
