// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package settings

// validate checks that the merged [DaemonSettings] satisfy the daemon's
// startup invariants. The defaults layer fills every required field, so a
// violation here means a source explicitly blanked one out.
//
// Returns nil if the settings are valid, or a descriptive error otherwise.
func (s *DaemonSettings) validate() error {
	if s.ConfigPath == "" {
		return ErrInvalidDaemonSettings
	}

	if s.Management.Address == "" || s.Management.TokenLifetime <= 0 {
		return ErrInvalidManagementSettings
	}

	return nil
}

func (s *ConsoleSettings) validate() error {
	if s.ServerURL == "" || s.RequestTimeout <= 0 {
		return ErrInvalidConsoleSettings
	}

	if s.Login == "" {
		return ErrInvalidConsoleSettings
	}

	return nil
}
