// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/models"
)

// setKeysRetries is how many times a failed SetKeys transaction is retried
// when the backend classifies the failure as transient.
const setKeysRetries = 2

// configKeyRepository is the SQL-backed implementation of [ConfigStore].
// It speaks plain database/sql, so the same code runs against PostgreSQL
// and SQLite; only connection setup and error classification differ per
// backend, and both live on [DB].
type configKeyRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewConfigKeyRepository constructs a [ConfigStore] backed by the provided
// database connection and logger.
func NewConfigKeyRepository(db *DB, logger *logger.Logger) ConfigStore {
	logger.Debug().Msg("creating config key repository")
	return &configKeyRepository{
		db:     db,
		logger: logger,
	}
}

// ListKeys returns all stored entries ordered by key. A non-empty prefix
// narrows the listing to keys starting with it.
func (r *configKeyRepository) ListKeys(ctx context.Context, prefix string) ([]models.ConfigKey, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectKeysQuery(prefix)
	if err != nil {
		log.Err(err).Str("func", "configKeyRepository.ListKeys").Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "configKeyRepository.ListKeys").Str("prefix", prefix).Msg("failed to list config keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.ConfigKey
	for rows.Next() {
		var entry models.ConfigKey
		if err := rows.Scan(&entry.Key, &entry.Value, &entry.UpdatedAt); err != nil {
			log.Err(err).Str("func", "configKeyRepository.ListKeys").Msg("failed to scan config key row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "configKeyRepository.ListKeys").Msg("row iteration failed")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// GetKey fetches one entry.
//
// Error handling:
//   - No matching row → [ErrKeyNotFound].
//   - Any other driver-level error → wrapped as [ErrExecutingQuery].
func (r *configKeyRepository) GetKey(ctx context.Context, key string) (models.ConfigKey, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectKeyQuery(key)
	if err != nil {
		log.Err(err).Str("func", "configKeyRepository.GetKey").Msg("failed to build select query")
		return models.ConfigKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entry models.ConfigKey
	scanErr := r.db.QueryRowContext(ctx, query, args...).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	switch {
	case errors.Is(scanErr, sql.ErrNoRows):
		return models.ConfigKey{}, ErrKeyNotFound
	case scanErr != nil:
		log.Err(scanErr).Str("func", "configKeyRepository.GetKey").Str("key", key).Msg("failed to fetch config key")
		return models.ConfigKey{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return entry, nil
}

// GetValue is the placeholder-resolution form of [GetKey]: a missing key is
// reported as (_, false, nil), never as an error.
func (r *configKeyRepository) GetValue(ctx context.Context, key string) (string, bool, error) {
	entry, err := r.GetKey(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return entry.Value, true, nil
}

// SetKeys upserts the given entries in a single transaction: either every
// entry is written or none is. Transient backend failures (deadlocks,
// serialization conflicts, dropped connections) are retried up to
// [setKeysRetries] times.
func (r *configKeyRepository) SetKeys(ctx context.Context, entries ...models.ConfigKey) error {
	if len(entries) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 0; ; attempt++ {
		err = r.setKeysOnce(ctx, entries)
		if err == nil {
			return nil
		}
		if attempt >= setKeysRetries || r.db.classifier == nil || r.db.classifier.Classify(err) != Retryable {
			return err
		}

		log.Warn().
			Str("func", "configKeyRepository.SetKeys").
			Int("attempt", attempt+1).
			Err(err).
			Msg("transient store failure, retrying transaction")
	}
}

func (r *configKeyRepository) setKeysOnce(ctx context.Context, entries []models.ConfigKey) error {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "configKeyRepository.SetKeys").
			Int("entries_count", len(entries)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for idx, entry := range entries {
		query, args, err := buildUpsertKeyQuery(entry, now)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "configKeyRepository.SetKeys").
				Int("iteration", idx+1).
				Str("key", entry.Key).
				Msg("failed to execute upsert for config key")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}

		if affected, raErr := result.RowsAffected(); raErr == nil && affected == 0 {
			log.Error().
				Str("func", "configKeyRepository.SetKeys").
				Str("key", entry.Key).
				Msg("upsert affected no rows")
			return ErrNothingSaved
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "configKeyRepository.SetKeys").
			Int("entries_count", len(entries)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// DeleteKey removes one entry.
//
// Error handling:
//   - Delete matching no rows → [ErrKeyNotFound].
//   - Any other driver-level error → wrapped as [ErrExecutingQuery].
func (r *configKeyRepository) DeleteKey(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteKeyQuery(key)
	if err != nil {
		log.Err(err).Str("func", "configKeyRepository.DeleteKey").Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "configKeyRepository.DeleteKey").Str("key", key).Msg("failed to delete config key")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil && affected == 0 {
		return ErrKeyNotFound
	}

	return nil
}

// Ping verifies the backing connection is alive.
func (r *configKeyRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the backing connection pool.
func (r *configKeyRepository) Close() error {
	return r.db.Close()
}
