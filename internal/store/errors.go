package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAlreadyInitialized is returned when an attempt to save a master
	// credential fails because the vault already holds one. The master
	// credential is a singleton; there is no replace operation.
	ErrAlreadyInitialized = errors.New("master credential already initialized")

	// ErrNoCredential is returned when the master credential is requested
	// from a vault that has never been initialized.
	ErrNoCredential = errors.New("no master credential set")

	// ErrRecordNotFound is returned when a query, update or delete targets
	// a record id that does not exist in the database.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrNoFieldsToUpdate is returned when a record patch names no columns,
	// so executing it would only bump updated_at without changing anything.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
