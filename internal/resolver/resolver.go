// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package resolver supplies external content for configuration placeholder
// tokens (%{file:...}%, %{env:...}%). Each implementation serves one
// scheme; the boot manager assembles them into the registry the config
// loader consumes.
//
// Implementations return [ErrNotFound] (possibly wrapped) when the key has
// no content, and other errors for genuine failures (permission, I/O,
// transport). The loader reports both as unresolved placeholders but keeps
// the cause in the error chain.
package resolver

import (
	"context"
	"errors"
)

// ErrNotFound indicates the resolver has no content for the requested key:
// a missing file, an unset environment variable, an absent store key, or a
// 404 from a remote source.
var ErrNotFound = errors.New("resolver: content not found")

// Func adapts a plain function to the resolver contract used by the config
// loader. Handy for tests and one-off programmatic loads.
type Func func(ctx context.Context, key string) ([]byte, error)

// Resolve implements the resolver contract by calling f.
func (f Func) Resolve(ctx context.Context, key string) ([]byte, error) {
	return f(ctx, key)
}
