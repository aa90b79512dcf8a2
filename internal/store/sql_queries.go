// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/arbormail/arbormail/models"
)

// psql builds queries with $N placeholders. SQLite accepts the same
// positional form, so one set of builders serves both backends.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectKeysQuery lists config keys ordered by key. A non-empty prefix
// narrows the result to keys starting with it.
func buildSelectKeysQuery(prefix string) (string, []any, error) {
	builder := psql.
		Select("key", "value", "updated_at").
		From(models.ConfigKey{}.TableName()).
		OrderBy("key")

	if prefix != "" {
		builder = builder.Where(sq.Like{"key": prefix + "%"})
	}

	return builder.ToSql()
}

// buildSelectKeyQuery fetches a single config key.
func buildSelectKeyQuery(key string) (string, []any, error) {
	return psql.
		Select("key", "value", "updated_at").
		From(models.ConfigKey{}.TableName()).
		Where(sq.Eq{"key": key}).
		ToSql()
}

// buildUpsertKeyQuery inserts one entry, replacing the value and timestamp
// when the key already exists.
func buildUpsertKeyQuery(entry models.ConfigKey, now time.Time) (string, []any, error) {
	return psql.
		Insert(models.ConfigKey{}.TableName()).
		Columns("key", "value", "updated_at").
		Values(entry.Key, entry.Value, now).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

// buildDeleteKeyQuery removes a single config key.
func buildDeleteKeyQuery(key string) (string, []any, error) {
	return psql.
		Delete(models.ConfigKey{}.TableName()).
		Where(sq.Eq{"key": key}).
		ToSql()
}
