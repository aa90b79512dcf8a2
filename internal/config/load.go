// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package config

import "context"

// Load runs the whole pipeline on a document: Parse, Resolve against the
// given resolver registry, Bind, Validate. It is the one-call form used by
// `arbormailctl check` and by tests; the daemon's boot manager drives the
// stages individually because it interleaves store extension and defaulting
// between them.
//
// On any failure Load returns a nil config and a *[Error]; it never returns
// a partially built result.
func Load(ctx context.Context, text string, resolvers Resolvers) (*ServerConfig, error) {
	tree, err := Parse(text)
	if err != nil {
		return nil, err
	}

	if err := Resolve(ctx, tree, resolvers); err != nil {
		return nil, err
	}

	cfg, err := Bind(tree)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
