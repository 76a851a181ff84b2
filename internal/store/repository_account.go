package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/models"
)

// sqlAccountRepository is the database/sql implementation of
// [AccountRepository]. It works against PostgreSQL and SQLite; the dialect
// differences live in [DB].
type sqlAccountRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating account repository")
	return &sqlAccountRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// CreateAccount inserts account. The email column carries a UNIQUE
// constraint, so of two concurrent inserts for the same email exactly one
// succeeds and the other gets [ErrEmailAlreadyExists].
//
// Inserts are never retried: a retried insert that actually committed would
// surface as a false duplicate.
func (r *sqlAccountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	if account.CreatedAt.IsZero() {
		account.CreatedAt = r.now().UTC().Truncate(time.Microsecond)
	}

	query, args, err := buildInsertAccountQuery(r.db.placeholder, account)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			log.Debug().Str("func", "*sqlAccountRepository.CreateAccount").Msg("email already exists")
			return models.Account{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*sqlAccountRepository.CreateAccount").Msg("insert failed")
		return models.Account{}, fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}

	return account, nil
}

// FindAccountByEmail looks the account up by exact email. Transient driver
// errors are retried with a bounded exponential backoff.
func (r *sqlAccountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountByEmailQuery(r.db.placeholder, email)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = retry.Do(ctx, r.db.backoff(), func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, query, args...)

		var err error
		account, err = scanAccount(row)
		if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Err(err).Str("func", "*sqlAccountRepository.FindAccountByEmail").Msg("retrying")
			return retry.RetryableError(err)
		}
		return err
	})

	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Account{}, ErrAccountNotFound
	case errors.Is(err, ErrScanningRow):
		log.Err(err).Str("func", "*sqlAccountRepository.FindAccountByEmail").Msg("scan failed")
		return models.Account{}, err
	default:
		log.Err(err).Str("func", "*sqlAccountRepository.FindAccountByEmail").Msg("query failed")
		return models.Account{}, fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}
}

func scanAccount(row *sql.Row) (models.Account, error) {
	if err := row.Err(); err != nil {
		return models.Account{}, err
	}

	var (
		account                   models.Account
		passwordHash, first, last sql.NullString
	)

	err := row.Scan(
		&account.ID,
		&account.Email,
		&passwordHash,
		&first,
		&last,
		&account.DisplayName,
		&account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, err
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	account.PasswordHash = passwordHash.String
	account.FirstName = first.String
	account.LastName = last.String

	return account, nil
}
