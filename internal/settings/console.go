package settings

import (
	"time"
)

// ConsoleSettings is the settings view consumed by arbormailctl.
type ConsoleSettings struct {
	// ServerURL is the base URL of the management API.
	ServerURL string

	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration

	// Login is the admin account name used when opening a session.
	Login string

	// LogLevel is the zerolog level name for the CLI file logger.
	LogLevel string

	// ConfigPath is the mail configuration document used by offline
	// subcommands such as "check".
	ConfigPath string

	// ResourceBase jails file macro lookups when non-empty.
	ResourceBase string

	// StoreDSN is the config store connection string used by the offline
	// "import" and "export" subcommands, which open the store directly
	// instead of going through a running daemon.
	StoreDSN string
}

// GetConsoleSettings builds and validates the CLI-specific settings view from
// the merged sources.
//
// It loads the merged settings the same way [GetDaemonSettings] does, maps
// only the fields relevant to arbormailctl, and validates the resulting
// [ConsoleSettings].
func GetConsoleSettings() (*ConsoleSettings, error) {
	merged, err := newSettingsBuilder().
		withFlags().
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	console := &ConsoleSettings{
		ServerURL:      merged.Console.ServerURL,
		RequestTimeout: merged.Console.RequestTimeout,
		Login:          merged.Console.Login,
		LogLevel:       merged.Daemon.LogLevel,
		ConfigPath:     merged.Daemon.ConfigPath,
		ResourceBase:   merged.Daemon.ResourceBase,
		StoreDSN:       merged.Store.DSN,
	}

	return console, console.validate()
}
