// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package config loads the arbormail server configuration: a TOML document
// describing network listeners, TLS policy, socket tuning and certificate
// bindings.
//
// Loading is a one-shot, synchronous pipeline executed before any listener
// socket opens:
//
//	tree, err := config.Parse(text)                 // TOML -> raw tree
//	err = config.Resolve(ctx, tree, resolvers)      // %{file:...}% etc.
//	cfg, err := config.Bind(tree)                   // tree -> typed config
//	err = config.Validate(cfg)                      // cross-field checks
//
// or equivalently config.Load, which composes the four stages. Every
// failure carries the full dotted key path of the offending value and is
// classified by [Kind]; no partial [ServerConfig] is ever returned. The
// resulting object is an immutable snapshot: nothing in this package or its
// callers mutates it after Load returns.
//
// The package performs no I/O of its own. External content for placeholder
// tokens is supplied through the resolver registry (see package resolver);
// reading the document from disk, the config store, or the network is the
// boot manager's job.
package config
