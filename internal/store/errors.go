package store

import "errors"

// Sentinel errors returned by [AccountRepository] implementations. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an insert fails because another
	// account already holds the same email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account was not found")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning an account row fails.
	ErrScanningRow = errors.New("failed to scan account row")

	// ErrUnknownDriver is returned by [NewStorages] for a driver name it
	// cannot open.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
