// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package resolver

import (
	"context"
	"fmt"
	"os"
)

// Env resolves %{env:...}% placeholders from process environment variables.
// An unset variable is a missing key; an empty-but-set variable resolves to
// the empty string.
type Env struct{}

// NewEnv constructs an [Env] resolver.
func NewEnv() *Env {
	return &Env{}
}

// Resolve implements the resolver contract for the env scheme.
func (e *Env) Resolve(_ context.Context, key string) ([]byte, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil, fmt.Errorf("environment variable %s: %w", key, ErrNotFound)
	}
	return []byte(value), nil
}
