// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package resolver

import (
	"context"
	"fmt"
)

// Memory resolves placeholders from an in-memory map. Used by tests and by
// programmatic loads that carry their material with them.
type Memory struct {
	values map[string]string
}

// NewMemory constructs a [Memory] resolver over the given map. The map is
// used as provided; callers must not mutate it afterwards.
func NewMemory(values map[string]string) *Memory {
	return &Memory{values: values}
}

// Resolve implements the resolver contract.
func (m *Memory) Resolve(_ context.Context, key string) ([]byte, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("key %s: %w", key, ErrNotFound)
	}
	return []byte(value), nil
}
