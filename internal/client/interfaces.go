// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package client

// Client is what a binary needs from the console: build it, call Run and
// surface the error. Run owns the terminal until the operator quits.
type Client interface {
	Run() error
}
