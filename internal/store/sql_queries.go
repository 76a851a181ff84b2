package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/michaelhessen/chronos/models"
)

const accountsTable = "accounts"

var accountColumns = []string{
	"id",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"display_name",
	"created_at",
}

func buildInsertAccountQuery(format sq.PlaceholderFormat, account models.Account) (string, []any, error) {
	return sq.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.ID,
			account.Email,
			nullString(account.PasswordHash),
			nullString(account.FirstName),
			nullString(account.LastName),
			account.DisplayName,
			account.CreatedAt,
		).
		PlaceholderFormat(format).
		ToSql()
}

func buildSelectAccountByEmailQuery(format sq.PlaceholderFormat, email string) (string, []any, error) {
	return sq.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"email": email}).
		Limit(1).
		PlaceholderFormat(format).
		ToSql()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
