package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/crypto"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/mock"
	"github.com/michaelhessen/chronos/internal/service"
	"github.com/michaelhessen/chronos/internal/store"
	"github.com/michaelhessen/chronos/models"
)

func TestSeed(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "created"},
		{name: "already present", err: fmt.Errorf("signup: %w", service.ErrDuplicateEmail)},
		{name: "store fault", err: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			signup := mock.NewMockSignupService(ctrl)
			signup.EXPECT().
				Signup(gomock.Any(), demoAccount).
				Return(models.PublicAccount{ID: "id-1", Email: demoAccount.Email, DisplayName: "John Doe"}, tt.err)

			err := seed(context.Background(), signup, logger.Nop())

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, "creating demo account")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSeed_IdempotentAgainstStore(t *testing.T) {
	ctx := context.Background()
	storages, err := store.NewStorages(ctx, config.Storage{DB: config.DB{Driver: config.DriverMemory}}, logger.Nop())
	require.NoError(t, err)

	// no session secret anywhere: seeding only hashes and stores
	signup := newSignupService(storages, config.Hasher{Cost: bcrypt.MinCost, Workers: 1}, logger.Nop())

	require.NoError(t, seed(ctx, signup, logger.Nop()))
	require.NoError(t, seed(ctx, signup, logger.Nop()))

	account, err := storages.AccountRepository.FindAccountByEmail(ctx, "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", account.DisplayName)
	assert.NotEqual(t, "johndoe123", account.PasswordHash)

	ok, err := crypto.NewPasswordHasher(config.Hasher{Cost: bcrypt.MinCost, Workers: 1}).
		Verify(ctx, "johndoe123", account.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}
