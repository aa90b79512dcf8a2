// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package adapter is the typed HTTP client of the arbormail management API.
//
// The primary abstraction is [ManagementClient], which decouples the console
// from the transport. The package ships a resty-backed implementation
// ([NewManagementClient]); HTTP statuses are mapped to the sentinel errors
// of errors.go by mapHTTPError, so callers branch with [errors.Is] instead
// of inspecting status codes.
package adapter

import (
	"context"

	"github.com/arbormail/arbormail/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/management_client_mock.go -package=mock

// ManagementClient is transport-typed access to the daemon management API.
// Implementations own serialization, the session token header, and the
// mapping of transport failures to this package's sentinel errors.
type ManagementClient interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called automatically after a successful
	// Login.
	SetToken(token string)

	// Token returns the stored bearer token, or "" before login.
	Token() string

	// Login exchanges administrator credentials for a session token via
	// POST /api/session. On success the token is stored via SetToken and
	// returned.
	Login(ctx context.Context, credentials models.Credentials) (models.Token, error)

	// Health probes GET /healthz. A nil return means the daemon is up and
	// its config store (when configured) answers.
	Health(ctx context.Context) error

	// Version fetches the daemon build metadata from GET /api/version.
	Version(ctx context.Context) (models.BuildInfo, error)

	// Check submits a candidate configuration document to
	// POST /api/config/check. A rejected document is a report, not an
	// error; the error return covers transport and auth failures only.
	Check(ctx context.Context, document []byte) (models.CheckReport, error)

	// Keys lists config store entries from GET /api/config/keys,
	// optionally restricted to a dotted-key prefix.
	Keys(ctx context.Context, prefix string) ([]models.ConfigKey, error)

	// SetKeys upserts entries into the config store via
	// PUT /api/config/keys.
	SetKeys(ctx context.Context, entries ...models.ConfigKey) error

	// DeleteKey removes one entry by its dotted key via
	// DELETE /api/config/keys/{key}.
	DeleteKey(ctx context.Context, key string) error
}
