// Command seed creates the demo account john@doe.com in the configured
// credential store. Running it again is a no-op.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/crypto"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/service"
	"github.com/michaelhessen/chronos/internal/store"
	"github.com/michaelhessen/chronos/internal/utils"
	"github.com/michaelhessen/chronos/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var demoAccount = models.SignupRequest{
	Email:     "john@doe.com",
	Password:  "johndoe123",
	FirstName: "John",
	LastName:  "Doe",
}

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("chronos-seed")
	if err := run(context.Background(), log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

// run returns instead of exiting so the store is always closed.
func run(ctx context.Context, log *logger.Logger) error {
	cfg, err := config.GetSeedConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	return seed(ctx, newSignupService(storages, cfg.Hasher, log), log)
}

// newSignupService wires the one service seeding needs. Nothing here signs
// sessions, so the session config is never read.
func newSignupService(storages *store.Storages, hasherCfg config.Hasher, log *logger.Logger) service.SignupService {
	hasher := crypto.NewPasswordHasher(hasherCfg)
	return service.NewSignupService(storages.AccountRepository, hasher, utils.NewUUIDGenerator(log), nil, log)
}

// seed signs up the demo account unless it already exists.
func seed(ctx context.Context, signup service.SignupService, log *logger.Logger) error {
	account, err := signup.Signup(ctx, demoAccount)
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		log.Info().Str("email", demoAccount.Email).Msg("demo account already present")
		return nil
	case err != nil:
		return fmt.Errorf("creating demo account: %w", err)
	}

	log.Info().
		Str("email", account.Email).
		Str("id", account.ID).
		Str("display_name", account.DisplayName).
		Msg("demo account created")
	return nil
}
