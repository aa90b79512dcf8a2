// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package migrations holds the config-store schema and applies it with
// goose. The SQL files are embedded, so a deployed binary migrates without
// shipping them separately.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate brings db up to the latest schema version. The dialect must name
// the goose dialect matching the driver the handle was opened with ("pgx"
// or "sqlite3"); the migration SQL itself stays portable across both.
// Running against an up-to-date database is a no-op.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migrations: nil database handle")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migrations: setting dialect %q: %w", dialect, err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrations: applying pending migrations: %w", err)
	}

	return nil
}
