// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure the loader can produce.
// A concrete failure is always a *[Error]; use errors.Is against these
// sentinels to branch on the class and errors.As to reach the key path.
var (
	// ErrSyntax indicates a malformed document: unterminated strings,
	// invalid table headers, duplicate keys at the same level.
	ErrSyntax = errors.New("syntax error")

	// ErrMissingField indicates a required key is absent (server.hostname,
	// at least one listener, a listener's protocol or bind, certificate
	// material).
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch indicates a value whose shape does not match the
	// expected type, e.g. a table where a string was required.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDuplicateKey indicates two listeners or certificates whose names
	// collide after normalization (trim + lowercase).
	ErrDuplicateKey = errors.New("duplicate name")

	// ErrUnresolvedPlaceholder indicates a %{scheme:...}% token whose
	// resolver failed to supply content.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrValidation indicates a cross-field invariant violation: dangling
	// certificate reference, unparseable bind address, numeric range
	// violation, unknown key.
	ErrValidation = errors.New("invalid configuration")
)

// Kind enumerates the failure classes of the load pipeline. The zero value
// is not a valid kind.
type Kind uint8

const (
	// KindSyntax corresponds to [ErrSyntax].
	KindSyntax Kind = iota + 1
	// KindMissingField corresponds to [ErrMissingField].
	KindMissingField
	// KindTypeMismatch corresponds to [ErrTypeMismatch].
	KindTypeMismatch
	// KindDuplicateKey corresponds to [ErrDuplicateKey].
	KindDuplicateKey
	// KindUnresolvedPlaceholder corresponds to [ErrUnresolvedPlaceholder].
	KindUnresolvedPlaceholder
	// KindValidation corresponds to [ErrValidation].
	KindValidation
)

// String returns the short lowercase name of the kind, suitable for wire
// payloads and log fields.
func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindMissingField:
		return "missing-field"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindDuplicateKey:
		return "duplicate-key"
	case KindUnresolvedPlaceholder:
		return "unresolved-placeholder"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// sentinel returns the package sentinel matching the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindSyntax:
		return ErrSyntax
	case KindMissingField:
		return ErrMissingField
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindDuplicateKey:
		return ErrDuplicateKey
	case KindUnresolvedPlaceholder:
		return ErrUnresolvedPlaceholder
	case KindValidation:
		return ErrValidation
	default:
		return nil
	}
}

// Error is the structured failure type returned by every stage of the load
// pipeline. Key holds the full dotted path of the offending value, e.g.
// "server.listener.smtps.bind.1"; it is empty only when a failure is not
// attributable to a single key (a document-level syntax error without
// position information).
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Key is the full dotted path of the offending key, empty when the
	// failure has no single key.
	Key string

	// Message is the operator-facing reason, including expected vs. actual
	// where that applies.
	Message string

	// Err is the underlying cause (resolver failure, TOML decode error),
	// nil when the loader itself detected the violation.
	Err error
}

// Error implements the error interface. The rendered form always starts
// with "config:" and includes the key path when present.
func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("config: %s: %s: %s", e.Kind, e.Key, e.Message)
}

// Is reports whether target is the sentinel corresponding to the error's
// kind, making errors.Is(err, config.ErrValidation) work across wrapping.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError constructs a *Error with a formatted message.
func newError(kind Kind, key, format string, args ...any) *Error {
	return &Error{Kind: kind, Key: key, Message: fmt.Sprintf(format, args...)}
}

// wrapError constructs a *Error carrying an underlying cause.
func wrapError(kind Kind, key string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Key: key, Message: fmt.Sprintf(format, args...), Err: err}
}
