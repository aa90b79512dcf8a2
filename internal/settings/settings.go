// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package settings

import (
	"time"
)

// Settings is the top-level container for the process's own knobs: where the
// mail configuration lives, where the management plane listens, which store
// backs the shared key/value table. It is populated by merging values from
// command-line flags, environment variables, an optional JSON file, and
// built-in defaults, in that order of precedence.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Settings struct {
	// Daemon holds the knobs of the daemon process itself: the mail
	// configuration path, the resource jail, and the log level.
	Daemon Daemon `envPrefix:"ARBORMAIL_"`

	// Management holds the listen address and token parameters of the
	// management plane.
	Management Management `envPrefix:"ARBORMAIL_MANAGEMENT_"`

	// Store holds the connection settings for the config key store.
	Store Store `envPrefix:"ARBORMAIL_STORE_"`

	// Console holds the settings of the operator console and CLI, which
	// talk to a running daemon over the management API.
	Console Console `envPrefix:"ARBORMAIL_CONSOLE_"`

	// SettingsFilePath is the optional path to a JSON settings file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from flags and environment variables.
	// Populated via the ARBORMAIL_SETTINGS environment variable or the
	// -s / -settings flag.
	SettingsFilePath string `env:"ARBORMAIL_SETTINGS"`
}

// Daemon holds process-level settings of arbormaild.
type Daemon struct {
	// ConfigPath is the path to the mail configuration document (TOML)
	// read at boot.
	// Env: ARBORMAIL_CONFIG
	ConfigPath string `env:"CONFIG"`

	// ResourceBase, when non-empty, jails %{file:...}% macro lookups under
	// the given directory. Empty means absolute paths are allowed.
	// Env: ARBORMAIL_RESOURCE_BASE
	ResourceBase string `env:"RESOURCE_BASE"`

	// LogLevel is the zerolog level name ("trace" .. "fatal") applied to
	// both binaries at startup.
	// Env: ARBORMAIL_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Management holds network and token settings for the management plane.
type Management struct {
	// Address is the TCP address on which the management HTTP server
	// listens, in "host:port" format (e.g. "127.0.0.1:8960").
	// Env: ARBORMAIL_MANAGEMENT_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// management request before the server cancels it (e.g. "30s", "1m").
	// Env: ARBORMAIL_MANAGEMENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenSecret, when non-empty, overrides the boot-generated
	// management auth key as the JWT signing secret. Must be kept
	// confidential.
	// Env: ARBORMAIL_MANAGEMENT_TOKEN_SECRET
	TokenSecret string `env:"TOKEN_SECRET"`

	// TokenLifetime specifies how long an issued session token remains
	// valid (e.g. "1h", "30m").
	// Env: ARBORMAIL_MANAGEMENT_TOKEN_LIFETIME
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME"`
}

// Store holds connection settings for the config key store backend.
type Store struct {
	// DSN selects and configures the backend: a "postgres://" or
	// "postgresql://" URI opens PostgreSQL, anything else is treated as a
	// SQLite file path. Empty means the daemon runs without a store.
	// Env: ARBORMAIL_STORE_DSN
	DSN string `env:"DSN"`
}

// Console holds settings for arbormailctl when it talks to a running daemon.
type Console struct {
	// ServerURL is the base URL of the management API
	// (e.g. "http://127.0.0.1:8960").
	// Env: ARBORMAIL_CONSOLE_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout is the default timeout for outbound management API
	// requests (e.g. "15s").
	// Env: ARBORMAIL_CONSOLE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Login is the admin account name presented to POST /api/session.
	// Env: ARBORMAIL_CONSOLE_LOGIN
	Login string `env:"LOGIN"`
}

// defaultSettings returns the built-in settings layer, merged in last so any
// explicit source wins over it.
func defaultSettings() *Settings {
	return &Settings{
		Daemon: Daemon{
			ConfigPath: "/etc/arbormail/config.toml",
			LogLevel:   "info",
		},
		Management: Management{
			Address:        "127.0.0.1:8960",
			RequestTimeout: 30 * time.Second,
			TokenLifetime:  time.Hour,
		},
		Console: Console{
			ServerURL:      "http://127.0.0.1:8960",
			RequestTimeout: 15 * time.Second,
			Login:          "admin",
		},
	}
}

// DaemonSettings is the settings view consumed by arbormaild.
type DaemonSettings struct {
	// ConfigPath is the mail configuration document read at boot.
	ConfigPath string

	// ResourceBase jails file macro lookups when non-empty.
	ResourceBase string

	// LogLevel is the zerolog level name.
	LogLevel string

	// Management holds the management plane listen and token settings.
	Management Management

	// Store holds the config store connection settings.
	Store Store
}

// GetDaemonSettings loads, merges, and validates the daemon settings from all
// available sources in the following priority order (first non-zero source
// wins per field):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *DaemonSettings or an error if any source fails
// to load or the final settings fail validation.
func GetDaemonSettings() (*DaemonSettings, error) {
	merged, err := newSettingsBuilder().
		withFlags().
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	daemon := &DaemonSettings{
		ConfigPath:   merged.Daemon.ConfigPath,
		ResourceBase: merged.Daemon.ResourceBase,
		LogLevel:     merged.Daemon.LogLevel,
		Management:   merged.Management,
		Store:        merged.Store,
	}

	return daemon, daemon.validate()
}
