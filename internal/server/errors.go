// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package server

import "errors"

var (
	errNoListenAddress = errors.New("no management listen address is configured")
)
