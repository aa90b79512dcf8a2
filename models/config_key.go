// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package models

import "time"

// ConfigKey is one dotted-key/value pair of the daemon configuration as
// persisted in the config store. Keys use the same dotted addressing as the
// configuration document ("server.listener.smtp.bind.0").
//
// Values are always stored as text; typing happens when the configuration
// loader binds the assembled document.
type ConfigKey struct {
	// Key is the full dotted path, unique within the store.
	Key string `json:"key"`

	// Value is the raw text value. Secret material (private keys,
	// generated auth keys) is redacted before the value leaves the
	// management API.
	Value string `json:"value"`

	// UpdatedAt is the timestamp of the last write.
	// Zero for entries that never touched the store.
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// TableName returns the name of the database table associated with the
// ConfigKey model.
func (c ConfigKey) TableName() string {
	return "config_keys"
}
