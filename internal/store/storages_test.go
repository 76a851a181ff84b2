package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/models"
)

func TestNewStorages_Memory(t *testing.T) {
	s, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: config.DriverMemory}}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, s.AccountRepository)

	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}

func TestNewStorages_SQLiteFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "chronos.db")
	cfg := config.Storage{DB: config.DB{Driver: config.DriverSQLite, DSN: dsn}}
	ctx := context.Background()

	s, err := NewStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)

	_, err = s.AccountRepository.CreateAccount(ctx, models.Account{ID: "id-1", Email: "john@doe.com", DisplayName: "John Doe"})
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())

	// reopening runs migrations again and keeps the data
	s, err = NewStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	found, err := s.AccountRepository.FindAccountByEmail(ctx, "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", found.DisplayName)
}

func TestNewStorages_UnknownDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: "mongo"}}, logger.Nop())
	require.ErrorIs(t, err, ErrUnknownDriver)
}
