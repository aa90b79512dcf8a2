// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package settings

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates s from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [Settings] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(s any) error {
	err := env.Parse(s)
	if err != nil {
		return fmt.Errorf("error getting env settings: %w", err)
	}

	return nil
}
