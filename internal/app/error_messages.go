// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package app contains shared operator-facing text used across the
// arbormail binaries.
//
// The Hint* constants map configuration failure kinds to a one-line
// remediation hint printed alongside a rejected document. Keeping them in
// one place ensures the command line and the console word failures the
// same way.
package app

const (
	// HintSyntax accompanies failures whose kind is "syntax": the document
	// could not be parsed at all.
	HintSyntax = "fix the document near the reported position; unterminated strings and stray table headers are the usual causes"

	// HintMissingField accompanies failures whose kind is "missing-field":
	// a required key is absent.
	HintMissingField = "add the missing key; server.hostname, each listener's protocol and bind, and certificate material are required"

	// HintTypeMismatch accompanies failures whose kind is "type-mismatch":
	// a key holds the wrong shape of value.
	HintTypeMismatch = "change the value's shape; the message states what was expected where, e.g. a string instead of a table"

	// HintDuplicateKey accompanies failures whose kind is "duplicate-key":
	// two listeners or certificates normalize to the same name.
	HintDuplicateKey = "rename one of the colliding entries; names are trimmed and lowercased before comparison"

	// HintUnresolvedPlaceholder accompanies failures whose kind is
	// "unresolved-placeholder": a %{scheme:argument}% token could not be
	// filled in.
	HintUnresolvedPlaceholder = "set the referenced environment variable or create the referenced file, then check the document again"

	// HintValidation accompanies failures whose kind is "validation": the
	// document parsed but violates a structural rule.
	HintValidation = "the reported key names the offending field; dangling certificate references and malformed bind addresses are common"
)

// HintForKind returns the remediation hint for a configuration failure
// kind as carried by a check report. Unknown kinds yield an empty string
// so callers can skip the hint line entirely.
func HintForKind(kind string) string {
	switch kind {
	case "syntax":
		return HintSyntax
	case "missing-field":
		return HintMissingField
	case "type-mismatch":
		return HintTypeMismatch
	case "duplicate-key":
		return HintDuplicateKey
	case "unresolved-placeholder":
		return HintUnresolvedPlaceholder
	case "validation":
		return HintValidation
	default:
		return ""
	}
}
