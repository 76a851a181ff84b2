package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/migrations"
	"github.com/michaelhessen/chronos/models"
)

var accountRowColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "display_name", "created_at"}

func newTestAccountRepo(t *testing.T) (*sqlAccountRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &sqlAccountRepository{
		db: &DB{
			DB:                 db,
			dialect:            migrations.DialectPostgres,
			placeholder:        sq.Dollar,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
		now:    time.Now,
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ── CreateAccount ──

func TestCreateAccount_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	account := models.Account{
		ID:           "0192f0c4-0000-7000-8000-000000000001",
		Email:        "john@doe.com",
		PasswordHash: "$2a$12$hash",
		FirstName:    "John",
		DisplayName:  "John",
	}

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(account.ID, account.Email, account.PasswordHash, "John", nil, "John", fixed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateAccount(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, fixed, created.CreatedAt)
	assert.Equal(t, account.Email, created.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccount_UniqueViolation(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateAccount(context.Background(), models.Account{Email: "john@doe.com"})
	require.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateAccount_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateAccount(context.Background(), models.Account{Email: "john@doe.com"})
	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.Contains(t, err.Error(), "unexpected DB error")
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateAccount_NotRetried(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, err := repo.CreateAccount(context.Background(), models.Account{Email: "john@doe.com"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── FindAccountByEmail ──

func TestFindAccountByEmail_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(accountRowColumns).
		AddRow("id-1", "john@doe.com", "$2a$12$hash", "John", nil, "John", now)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = \\$1").
		WithArgs("john@doe.com").
		WillReturnRows(rows)

	found, err := repo.FindAccountByEmail(context.Background(), "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, "id-1", found.ID)
	assert.Equal(t, "$2a$12$hash", found.PasswordHash)
	assert.Equal(t, "John", found.FirstName)
	assert.Empty(t, found.LastName)
	assert.True(t, found.HasPassword())
}

func TestFindAccountByEmail_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs("nobody@doe.com").
		WillReturnRows(sqlmock.NewRows(accountRowColumns))

	_, err := repo.FindAccountByEmail(context.Background(), "nobody@doe.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestFindAccountByEmail_UnexpectedError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs("john@doe.com").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindAccountByEmail(context.Background(), "john@doe.com")
	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

func TestFindAccountByEmail_ScanError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	// intentionally wrong shape
	rows := sqlmock.NewRows([]string{"id"}).AddRow("id-1")
	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs("john@doe.com").
		WillReturnRows(rows)

	_, err := repo.FindAccountByEmail(context.Background(), "john@doe.com")
	require.ErrorIs(t, err, ErrScanningRow)
}

func TestFindAccountByEmail_RetriesTransientError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs("john@doe.com").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs("john@doe.com").
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow("id-1", "john@doe.com", "h", "John", "Doe", "John Doe", time.Now()))

	found, err := repo.FindAccountByEmail(context.Background(), "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", found.DisplayName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAccountByEmail_NonRetryableNotRetried(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.FindAccountByEmail(context.Background(), "john@doe.com")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── sqlite round trip ──

func newSQLiteRepo(t *testing.T) AccountRepository {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.DB{Driver: config.DriverSQLite, DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	return NewAccountRepository(db, logger.Nop())
}

func TestAccountRepository_SQLiteRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	created, err := repo.CreateAccount(ctx, models.Account{
		ID:           "id-1",
		Email:        "jane@doe.com",
		PasswordHash: "digest",
		FirstName:    "Jane",
		LastName:     "Doe",
		DisplayName:  "Jane Doe",
	})
	require.NoError(t, err)

	found, err := repo.FindAccountByEmail(ctx, "jane@doe.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Jane Doe", found.DisplayName)
	assert.Equal(t, "digest", found.PasswordHash)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

	_, err = repo.FindAccountByEmail(ctx, "JANE@doe.com")
	require.ErrorIs(t, err, ErrAccountNotFound, "emails compare exactly")
}

func TestAccountRepository_SQLiteDuplicateEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.CreateAccount(ctx, models.Account{ID: "id-1", Email: "jane@doe.com", DisplayName: "jane@doe.com"})
	require.NoError(t, err)

	_, err = repo.CreateAccount(ctx, models.Account{ID: "id-2", Email: "jane@doe.com", DisplayName: "jane@doe.com"})
	require.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, nullString(""))
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, nullString("x"))
}
