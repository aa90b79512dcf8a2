// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned when a lookup or delete targets a config
	// key that does not exist in the store.
	ErrKeyNotFound = errors.New("config key not found")

	// ErrNothingSaved is returned when an upsert completes without error but
	// the number of affected rows is zero, indicating that no entry was
	// actually persisted.
	ErrNothingSaved = errors.New("config keys were not saved")
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

	// ErrScanningRows is returned when scanning column values during result
	// iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan config key rows")
)
