package service

import (
	"fmt"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/crypto"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/metrics"
	"github.com/michaelhessen/chronos/internal/store"
	"github.com/michaelhessen/chronos/internal/utils"
	"github.com/michaelhessen/chronos/models"
)

// Services groups the service layer handed to the transport.
type Services struct {
	SignupService  SignupService
	Authenticator  Authenticator
	SessionIssuer  SessionIssuer
	Gate           Gate
	AppInfoService AppInfoService
}

var _ IDGenerator = (*utils.UUIDGenerator)(nil)

// NewServices wires every service over storages. One password hasher, and
// so one worker pool, is shared by signup and authentication.
func NewServices(
	storages *store.Storages,
	cfg config.StructuredConfig,
	build models.AppBuildInfo,
	m *metrics.Metrics,
	logger *logger.Logger,
) (*Services, error) {
	hasher := crypto.NewPasswordHasher(cfg.Hasher, crypto.WithObserver(m))

	sessions, err := NewSessionIssuer(cfg.Session, logger)
	if err != nil {
		return nil, fmt.Errorf("creating session issuer: %w", err)
	}

	gate, err := NewGate(cfg.Session, cfg.Gate)
	if err != nil {
		return nil, fmt.Errorf("creating gate: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("creating app info service: %w", err)
	}

	return &Services{
		SignupService:  NewSignupService(storages.AccountRepository, hasher, utils.NewUUIDGenerator(logger), m, logger),
		Authenticator:  NewAuthenticator(storages.AccountRepository, hasher, m, logger),
		SessionIssuer:  sessions,
		Gate:           gate,
		AppInfoService: appInfo,
	}, nil
}
