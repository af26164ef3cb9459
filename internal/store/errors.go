package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCredentialNotFound is returned when a lookup targets a record that
	// is not cached for the user.
	ErrCredentialNotFound = errors.New("credential was not found")

	// ErrSecureItemNotFound is returned when a secure storage item does not
	// exist.
	ErrSecureItemNotFound = errors.New("secure item was not found")

	// ErrSecureItemCorrupt is returned when a stored secure item cannot be
	// opened with the device key.
	ErrSecureItemCorrupt = errors.New("secure item is corrupt")

	// ErrInvalidDeviceKey is returned when the device key is not 32 bytes.
	ErrInvalidDeviceKey = errors.New("invalid device key")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
