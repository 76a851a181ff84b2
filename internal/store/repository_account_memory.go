package store

import (
	"context"
	"sync"
	"time"

	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/models"
)

// memoryAccountRepository keeps accounts in a map keyed by email. The
// existence check and the insert happen under one lock, which gives the
// same uniqueness guarantee as the database constraint.
type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	logger   *logger.Logger
	now      func() time.Time
}

// NewMemoryAccountRepository returns an empty in-process [AccountRepository].
// Data is lost when the process exits.
func NewMemoryAccountRepository(logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating in-memory account repository")
	return &memoryAccountRepository{
		accounts: make(map[string]models.Account),
		logger:   logger,
		now:      time.Now,
	}
}

func (r *memoryAccountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Email]; ok {
		return models.Account{}, ErrEmailAlreadyExists
	}
	r.accounts[account.Email] = account

	return account, nil
}

func (r *memoryAccountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[email]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}

	return account, nil
}
