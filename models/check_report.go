// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package models

// CheckReport is the outcome of running a configuration document through
// the full load pipeline (parse, resolve, bind, validate) without applying
// it. Returned by POST /api/config/check and printed by
// `arbormailctl check`.
type CheckReport struct {
	// OK is true when the document loaded and validated cleanly.
	OK bool `json:"ok"`

	// Kind classifies the failure (syntax, missing field, type mismatch,
	// duplicate key, unresolved placeholder, validation). Empty when OK.
	Kind string `json:"kind,omitempty"`

	// Key is the full dotted path of the offending key. Empty when OK or
	// when the failure is not attributable to a single key (rare).
	Key string `json:"key,omitempty"`

	// Message is the operator-facing reason. Empty when OK.
	Message string `json:"message,omitempty"`

	// Hostname and Listeners summarize the accepted document when OK.
	Hostname  string   `json:"hostname,omitempty"`
	Listeners []string `json:"listeners,omitempty"`
}
