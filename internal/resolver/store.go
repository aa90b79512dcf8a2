// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package resolver

import (
	"context"
	"fmt"
)

// KeyValueSource is the narrow read surface the store resolver needs. The
// config store satisfies it; tests use a map-backed fake.
type KeyValueSource interface {
	// GetValue returns the stored value and whether the key exists.
	GetValue(ctx context.Context, key string) (string, bool, error)
}

// Store resolves placeholders against the daemon's config store, making
// stored secrets addressable from the document without writing them to a
// file.
type Store struct {
	source KeyValueSource
}

// NewStore constructs a [Store] resolver over the given source.
func NewStore(source KeyValueSource) *Store {
	return &Store{source: source}
}

// Resolve implements the resolver contract.
func (s *Store) Resolve(ctx context.Context, key string) ([]byte, error) {
	value, ok, err := s.source.GetValue(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("store lookup %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("store key %s: %w", key, ErrNotFound)
	}
	return []byte(value), nil
}
