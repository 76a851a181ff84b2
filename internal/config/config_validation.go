// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package config

import (
	"fmt"
	"slices"
)

// Storage drivers accepted in [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Password hashing bounds. DefaultHashCost is the production work factor;
// MinHashCost and MaxHashCost mirror the bcrypt limits.
const (
	DefaultHashCost = 12
	MinHashCost     = 4
	MaxHashCost     = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.Session.Validate(); err != nil {
		return err
	}

	if err := cfg.Hasher.Validate(); err != nil {
		return err
	}

	if cfg.Hasher.Cost < DefaultHashCost {
		return fmt.Errorf("%w: cost %d is below %d", ErrInvalidHasherConfigs, cfg.Hasher.Cost, DefaultHashCost)
	}

	if err := cfg.Storage.DB.Validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

// validateSeed checks only what the seed command uses: the hasher and the
// store. Seeding never signs a token, so no session secret is needed.
func (cfg *StructuredConfig) validateSeed() error {
	if err := cfg.Hasher.Validate(); err != nil {
		return err
	}

	if cfg.Hasher.Cost < DefaultHashCost {
		return fmt.Errorf("%w: cost %d is below %d", ErrInvalidHasherConfigs, cfg.Hasher.Cost, DefaultHashCost)
	}

	return cfg.Storage.DB.Validate()
}

// Validate reports whether the session configuration can sign tokens whose
// lifetime matches the session cookie.
func (s Session) Validate() error {
	if s.Secret == "" {
		return fmt.Errorf("%w: empty secret", ErrInvalidSessionConfigs)
	}
	if s.Lifetime != SessionLifetime {
		return fmt.Errorf("%w: lifetime must be %s", ErrInvalidSessionConfigs, SessionLifetime)
	}
	if s.CookieName == "" || s.LoginPath == "" || s.HomePath == "" {
		return fmt.Errorf("%w: cookie name, login and home paths are required", ErrInvalidSessionConfigs)
	}
	if s.UpdateAge < 0 || s.UpdateAge > s.Lifetime {
		return fmt.Errorf("%w: update age out of range", ErrInvalidSessionConfigs)
	}

	return nil
}

// Validate checks the bcrypt bounds and the worker pool size.
func (h Hasher) Validate() error {
	if h.Cost < MinHashCost || h.Cost > MaxHashCost {
		return fmt.Errorf("%w: cost %d out of range", ErrInvalidHasherConfigs, h.Cost)
	}
	if h.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidHasherConfigs)
	}

	return nil
}

// Validate checks the driver name and DSN presence.
func (db DB) Validate() error {
	if !slices.Contains([]string{DriverPostgres, DriverSQLite, DriverMemory}, db.Driver) {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, db.Driver)
	}
	if db.Driver != DriverMemory && db.DSN == "" {
		return fmt.Errorf("%w: driver %s needs a DSN", ErrInvalidStorageConfigs, db.Driver)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.TokenFile == "" {
		return fmt.Errorf("%w: empty token file path", ErrInvalidAdapterConfigs)
	}

	return nil
}
