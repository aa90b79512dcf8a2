// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package manager

import "errors"

var (
	// ErrNoStoreConfigured is returned by store-backed operations when
	// the daemon runs without a config store.
	ErrNoStoreConfigured = errors.New("no config store is configured")

	// ErrConfigFileExists is returned by Quickstart when the target
	// document already exists. Quickstart never overwrites.
	ErrConfigFileExists = errors.New("configuration file already exists")

	// ErrEmptyDocument is returned by Import when the fetched document
	// parses to zero configuration keys.
	ErrEmptyDocument = errors.New("document contains no configuration keys")
)
