package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrProfileAlreadyExists is returned when inserting a user profile
	// fails because another profile with the same auth subject id already
	// exists. This is the expected outcome of the get-or-create race:
	// the losing request retries the lookup instead of failing.
	ErrProfileAlreadyExists = errors.New("profile already exists for auth user")

	// ErrProfileNotFound is returned when no user profile matches the
	// requested auth subject id or profile id.
	ErrProfileNotFound = errors.New("user profile was not found")

	// ErrProviderNotFound is returned when a query or mutation targets a
	// provider that does not exist. Ownership mismatches surface the same
	// error at the service layer so that callers cannot distinguish another
	// user's provider from an absent one.
	ErrProviderNotFound = errors.New("provider was not found")

	// ErrCostRecordNotSaved is returned when an INSERT of one or more cost
	// records completes without error but the number of affected rows is
	// zero, indicating that nothing was actually persisted.
	ErrCostRecordNotSaved = errors.New("cost record was not saved")

	// ErrEmptyUpdate is returned when an update carries no fields to apply.
	ErrEmptyUpdate = errors.New("no fields to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
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

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared (e.g. syntax error or connection issue).
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
