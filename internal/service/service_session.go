package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/models"
)

// sessionClaims is the fixed claim set of a session token.
type sessionClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// sessionIssuer signs HS256 tokens. It holds no per-session state.
type sessionIssuer struct {
	// secret is a private copy of the configured signing secret.
	secret []byte

	// issuer is written to and required in the "iss" claim.
	issuer string

	// lifetime is always config.SessionLifetime.
	lifetime time.Duration

	// now is the clock used for issuing and validating.
	now func() time.Time

	logger *logger.Logger
}

// NewSessionIssuer builds a [SessionIssuer] from the session config. The
// secret is copied; later changes to cfg have no effect.
func NewSessionIssuer(cfg config.Session, logger *logger.Logger) (SessionIssuer, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSessionSecret
	}

	return &sessionIssuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		lifetime: config.SessionLifetime,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Issue signs a new token for identity valid from now for the session
// lifetime. Timestamps have second precision.
func (s *sessionIssuer) Issue(ctx context.Context, identity models.Identity) (models.Session, error) {
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.lifetime)

	claims := sessionClaims{
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Name:      identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.SubjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionIssuer.Issue").Msg("signing failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionIssue, err)
	}

	return models.Session{
		Identity:  identity,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Token:     signed,
	}, nil
}

// Decode verifies token and returns its session. A token is valid iff its
// HS256 signature verifies and now is strictly before its expiry. Signature
// and format failures are ErrSessionTampered; an elapsed expiry is
// ErrSessionExpired.
func (s *sessionIssuer) Decode(ctx context.Context, token string) (models.Session, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &sessionClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Session{}, ErrSessionExpired
		}
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*sessionIssuer.Decode").Msg("token rejected")
		return models.Session{}, ErrSessionTampered
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return models.Session{}, ErrSessionTampered
	}

	return models.Session{
		Identity: models.Identity{
			SubjectID:   claims.Subject,
			Email:       claims.Email,
			FirstName:   claims.FirstName,
			LastName:    claims.LastName,
			DisplayName: claims.Name,
		},
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
		Token:     token,
	}, nil
}

// Renew re-issues a currently valid token with a fresh window and the same
// identity claims. Invalid tokens are not renewed.
func (s *sessionIssuer) Renew(ctx context.Context, token string) (models.Session, error) {
	session, err := s.Decode(ctx, token)
	if err != nil {
		return models.Session{}, err
	}

	return s.Issue(ctx, session.Identity)
}
