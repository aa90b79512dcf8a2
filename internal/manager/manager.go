// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package manager

import (
	"time"

	"github.com/arbormail/arbormail/internal/crypto"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/store"
)

// defaultFetchTimeout bounds Import fetches when Options.FetchTimeout is
// left zero.
const defaultFetchTimeout = 30 * time.Second

// Options carries the file-system and network knobs of a [Manager]. The
// zero value is usable for in-memory tests; the daemon fills it from its
// settings.
type Options struct {
	// ConfigPath is the path of the local configuration document.
	ConfigPath string

	// ResourceBase jails relative %{file:...}% lookups. Empty means
	// unjailed: relative paths resolve against the working directory.
	ResourceBase string

	// FetchTimeout bounds remote document fetches during Import.
	// Zero selects defaultFetchTimeout.
	FetchTimeout time.Duration
}

// Manager drives the configuration lifecycle: Boot at daemon start,
// Quickstart, Import and Export from the control CLI.
type Manager struct {
	opts     Options
	store    store.ConfigStore // nil when the daemon runs without a store
	keychain crypto.Keychain
	logger   *logger.Logger
}

// NewManager returns a Manager over the given collaborators. configStore
// may be nil; store-backed operations then degrade as documented per
// method.
func NewManager(opts Options, configStore store.ConfigStore, keychain crypto.Keychain, logger *logger.Logger) *Manager {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}

	return &Manager{
		opts:     opts,
		store:    configStore,
		keychain: keychain,
		logger:   logger,
	}
}
