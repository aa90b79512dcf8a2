// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package validators holds the input validation rules applied before
// config-store writes reach the persistence layer.
//
// Validators are constructed inside the services that use them and called
// with context, value, and optional field names. This keeps the rules out of
// the transport and storage layers, where they would otherwise be duplicated
// between the management API and the console form.
package validators

import "context"

// Validator checks one value, a pointer to it, or a batch. Passing field
// names restricts the check to those fields; passing none checks them all.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
