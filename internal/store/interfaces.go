// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package store

import (
	"context"

	"github.com/arbormail/arbormail/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ConfigStore is the persistent key-value extension of the configuration
// file. Entries are flat dotted keys with text values; the boot manager
// grafts them into the parsed document, the local file winning on conflict.
//
// GetValue reports a miss as (_, false, nil) rather than an error, which is
// the shape placeholder resolution needs.
type ConfigStore interface {
	ListKeys(ctx context.Context, prefix string) ([]models.ConfigKey, error)
	GetKey(ctx context.Context, key string) (models.ConfigKey, error)
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetKeys(ctx context.Context, entries ...models.ConfigKey) error
	DeleteKey(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
