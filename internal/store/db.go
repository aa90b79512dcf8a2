// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package store

import (
	"database/sql"

	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/migrations"
)

// DB wraps a database/sql handle together with the goose dialect it was
// opened with and the backend's error classifier. Both supported backends
// (PostgreSQL and SQLite) produce a *DB; the config-key repository works
// against either.
type DB struct {
	*sql.DB
	dialect    string
	classifier ErrorClassificator
	logger     *logger.Logger
}

// Migrate applies all pending schema migrations for the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
