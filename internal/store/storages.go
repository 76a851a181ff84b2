package store

import (
	"context"
	"fmt"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/logger"
)

// Storages groups the repositories handed to the service layer together
// with the connection that backs them.
type Storages struct {
	// AccountRepository is the credential store.
	AccountRepository AccountRepository

	// db is nil for the memory driver.
	db *DB
}

// NewStorages opens the backend selected by cfg.DB.Driver, applies pending
// migrations and wires the repositories:
//   - "postgres": pgx connection pool, DSN is a postgres URL.
//   - "sqlite":   single-connection sqlite database at the DSN path.
//   - "memory":   process-local map, nothing is persisted.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverMemory:
		return &Storages{AccountRepository: NewMemoryAccountRepository(log)}, nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		db:                db,
	}, nil
}

// Ping checks the backing database. It is a no-op for the memory driver.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
