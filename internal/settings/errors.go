package settings

import "errors"

// Validation errors returned by the settings views when required groups are
// incomplete or invalid.
var (
	// ErrInvalidDaemonSettings indicates invalid daemon process settings
	// (for example, an empty mail configuration path).
	ErrInvalidDaemonSettings = errors.New("invalid daemon settings")
	// ErrInvalidManagementSettings indicates invalid management plane
	// settings (for example, missing listen address or a non-positive
	// token lifetime).
	ErrInvalidManagementSettings = errors.New("invalid management settings")
	// ErrInvalidConsoleSettings indicates invalid console settings
	// (for example, missing server URL or admin login).
	ErrInvalidConsoleSettings = errors.New("invalid console settings")
)
