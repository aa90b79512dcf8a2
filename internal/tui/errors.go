// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package tui

import (
	"errors"
	"strings"

	"github.com/arbormail/arbormail/internal/adapter"
)

// humanizeTransportError rewrites failures into a message an operator can
// act on. Typed management API errors map to fixed phrasings; raw transport
// noise collapses into one "daemon unreachable" line.
func humanizeTransportError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return "The daemon rejected the session: wrong login or secret."
	case errors.Is(err, adapter.ErrNotSupported):
		return "This daemon runs without a config store."
	case errors.Is(err, adapter.ErrUnavailable):
		return "The daemon cannot reach its config store right now."
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network, or the daemon is not running."
	}

	return err.Error()
}
