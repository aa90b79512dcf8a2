// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/arbormail/arbormail/internal/logger"
)

// Storages groups the persistent repositories the daemon needs. Today that
// is only the config-key store; additional repositories can be added here as
// the feature set grows.
type Storages struct {
	// ConfigKeys is the persistent key-value extension of the configuration
	// file.
	ConfigKeys ConfigStore
}

// NewStorages initialises the storage layer. The backend is selected by the
// DSN: postgres:// and postgresql:// URLs open a PostgreSQL pool, anything
// else is treated as an SQLite file path (the single-node default). Pending
// schema migrations run before the storages are handed out.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := connect(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("store connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		ConfigKeys: NewConfigKeyRepository(db, log),
	}, nil
}

func connect(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewConnectPostgres(ctx, dsn, log)
	}
	return NewConnectSQLite(ctx, dsn, log)
}
