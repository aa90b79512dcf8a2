// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package client implements the interactive console application runtime.
//
// It wires the management API client and the terminal console into a single
// process lifecycle: probe the daemon, open a session, browse the store.
package client
