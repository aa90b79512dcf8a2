// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package manager

import (
	"context"
	"fmt"
	"os"

	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/internal/resolver"
	"github.com/arbormail/arbormail/internal/utils"
	"github.com/arbormail/arbormail/models"
)

// Dotted keys with boot-time semantics.
const (
	keyHostname    = "server.hostname"
	keyGreeting    = "server.greeting"
	keyAdminLogin  = "management.admin"
	keyAdminSecret = "management.secret"
	keyAuthKey     = "management.auth-key"
)

// authKeyLength is the length of a generated management auth key.
const authKeyLength = 64

// BootResult is everything the daemon needs from a successful boot.
type BootResult struct {
	// Config is the bound and validated server configuration.
	Config *config.ServerConfig

	// Snapshot is the effective document flattened to sorted dotted
	// keys, after store grafting and placeholder resolution.
	Snapshot []config.Entry

	// AuthKey is the management token signing key: the document value
	// when configured, otherwise freshly generated (and persisted to the
	// store when one is available).
	AuthKey string

	// AdminLogin and SecretDigest are the management credentials found
	// in the effective document. Both empty when management sessions are
	// not configured.
	AdminLogin   string
	SecretDigest string
}

// Boot loads, completes and validates the daemon configuration.
//
// The phase order matters: environment placeholders resolve before the
// store graft because store credentials may arrive via %{env:...}%, while
// file, store and cross-key placeholders resolve after it so that grafted
// keys participate in resolution. %{store:...}% addresses a stored value
// inline without grafting its key into the document.
func (m *Manager) Boot(ctx context.Context) (*BootResult, error) {
	raw, err := os.ReadFile(m.opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading configuration document: %w", err)
	}

	tree, err := config.Parse(string(raw))
	if err != nil {
		return nil, err
	}

	if err = config.Resolve(ctx, tree, config.Resolvers{config.SchemeEnv: resolver.NewEnv()}); err != nil {
		return nil, err
	}

	if m.store != nil {
		if err = m.graftStoreKeys(ctx, tree); err != nil {
			return nil, err
		}
	}

	m.applyHostDefaults(tree)

	authKey, err := m.ensureAuthKey(ctx, tree)
	if err != nil {
		return nil, err
	}

	res := config.Resolvers{
		config.SchemeFile: resolver.NewFile(m.opts.ResourceBase),
		config.SchemeCfg:  nil, // intercepted by Resolve itself
	}
	if m.store != nil {
		res[config.SchemeStore] = resolver.NewStore(m.store)
	}
	if err = config.Resolve(ctx, tree, res); err != nil {
		return nil, err
	}

	cfg, err := config.Bind(tree)
	if err != nil {
		return nil, err
	}
	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	m.warnOddValues(cfg)

	m.logger.Info().
		Str("hostname", cfg.Hostname).
		Int("listeners", len(cfg.Listeners)).
		Msg("configuration loaded")

	return &BootResult{
		Config:       cfg,
		Snapshot:     tree.Flatten(),
		AuthKey:      authKey,
		AdminLogin:   stringLeaf(tree, keyAdminLogin),
		SecretDigest: stringLeaf(tree, keyAdminSecret),
	}, nil
}

// graftStoreKeys merges every store key the local document does not define.
// The local file always wins: an operator editing the file overrides what
// the management API wrote earlier.
func (m *Manager) graftStoreKeys(ctx context.Context, tree *config.Tree) error {
	entries, err := m.store.ListKeys(ctx, "")
	if err != nil {
		return fmt.Errorf("reading config store keys: %w", err)
	}

	grafted := 0
	for _, entry := range entries {
		if tree.SetDefault(entry.Key, entry.Value) {
			grafted++
		}
	}

	m.logger.Debug().
		Int("stored", len(entries)).
		Int("grafted", grafted).
		Msg("config store keys merged into the document")
	return nil
}

// applyHostDefaults fills server.hostname from the OS and derives the SMTP
// greeting from whichever hostname ends up effective.
func (m *Manager) applyHostDefaults(tree *config.Tree) {
	hostname := stringLeaf(tree, keyHostname)
	if hostname == "" {
		osName, err := os.Hostname()
		if err != nil || osName == "" {
			return
		}
		if !tree.SetDefault(keyHostname, osName) {
			return // present but empty; validation reports it
		}
		hostname = osName
	}

	tree.SetDefault(keyGreeting, hostname+" ESMTP Arbormail")
}

// ensureAuthKey returns the configured management auth key, generating and
// persisting one when the effective document has none. Without a store the
// generated key is ephemeral and sessions break on restart.
func (m *Manager) ensureAuthKey(ctx context.Context, tree *config.Tree) (string, error) {
	if key := stringLeaf(tree, keyAuthKey); key != "" {
		return key, nil
	}

	key, err := utils.GenerateKey(authKeyLength)
	if err != nil {
		return "", fmt.Errorf("generating management auth key: %w", err)
	}
	tree.SetDefault(keyAuthKey, key)

	if m.store == nil {
		m.logger.Warn().Msg("generated management auth key is ephemeral: no config store to persist it")
		return key, nil
	}

	if err = m.store.SetKeys(ctx, models.ConfigKey{Key: keyAuthKey, Value: key}); err != nil {
		return "", fmt.Errorf("persisting management auth key: %w", err)
	}
	m.logger.Info().Msg("generated management auth key persisted to the config store")
	return key, nil
}

// warnOddValues logs accepted configurations that rarely mean what the
// operator intended.
func (m *Manager) warnOddValues(cfg *config.ServerConfig) {
	if cfg.TLS.Timeout != nil && *cfg.TLS.Timeout == 0 {
		m.logger.Warn().
			Str("key", "server.tls.timeout").
			Msg("tls handshake timeout 0 disables the deadline")
	}

	for _, name := range cfg.ListenerNames() {
		tls := cfg.Listeners[name].TLS
		// Inherited blocks share the global pointer; warn once.
		if tls.Timeout != nil && *tls.Timeout == 0 && tls.Timeout != cfg.TLS.Timeout {
			m.logger.Warn().
				Str("key", "server.listener."+name+".tls.timeout").
				Msg("tls handshake timeout 0 disables the deadline")
		}
	}
}

// stringLeaf returns the string at path, or "" when the path is absent or
// holds a non-string node.
func stringLeaf(tree *config.Tree, path string) string {
	node, ok := tree.Lookup(path)
	if !ok {
		return ""
	}

	s, _ := node.(string)
	return s
}
