// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File resolves %{file:...}% placeholders by reading the named path from
// disk. Trailing newlines are trimmed, matching how certificate and key
// material is normally consumed.
type File struct {
	// base, when non-empty, jails resolution: keys are joined under base
	// and may not escape it.
	base string
}

// NewFile constructs a [File] resolver. An empty base resolves keys as
// given (absolute or relative to the working directory); a non-empty base
// confines them to that directory.
func NewFile(base string) *File {
	return &File{base: base}
}

// Resolve implements the resolver contract for the file scheme.
func (f *File) Resolve(_ context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return bytes.TrimRight(data, "\r\n"), nil
}

func (f *File) path(key string) (string, error) {
	if f.base == "" {
		return key, nil
	}

	joined := filepath.Clean(filepath.Join(f.base, key))
	root := filepath.Clean(f.base)
	if joined != root && !strings.HasPrefix(joined, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the configured base directory: %w", key, ErrNotFound)
	}
	return joined, nil
}
