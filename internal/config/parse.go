// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// Parse decodes a TOML document into the raw key-value [Tree].
//
// Any decoding failure — unterminated strings, invalid table headers,
// duplicate keys or tables at the same level — is returned as a
// [KindSyntax] *[Error] carrying the decoder's position when available.
// Parse performs no resolution, typing or validation; those are the later
// pipeline stages.
func Parse(text string) (*Tree, error) {
	var root map[string]any
	if err := toml.Unmarshal([]byte(text), &root); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, wrapError(KindSyntax, "", err, "line %d, column %d: %s", row, col, decodeErr.Error())
		}
		return nil, wrapError(KindSyntax, "", err, "%s", err.Error())
	}

	return newTree(root), nil
}
