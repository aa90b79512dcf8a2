// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arbormail/arbormail/internal/config"
)

// Check reports carry the kind as a string, so the hint table must stay in
// step with the loader's kind names.
func TestHintForKind_CoversEveryLoaderKind(t *testing.T) {
	kinds := []config.Kind{
		config.KindSyntax,
		config.KindMissingField,
		config.KindTypeMismatch,
		config.KindDuplicateKey,
		config.KindUnresolvedPlaceholder,
		config.KindValidation,
	}

	for _, kind := range kinds {
		assert.NotEmpty(t, HintForKind(kind.String()), "no hint for kind %q", kind)
	}
}

func TestHintForKind_UnknownKindYieldsNoHint(t *testing.T) {
	assert.Empty(t, HintForKind("unknown"))
	assert.Empty(t, HintForKind(""))
}
