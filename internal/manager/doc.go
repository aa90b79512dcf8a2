// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package manager assembles the daemon configuration at boot: it reads the
// local document, grafts config store keys into it, resolves placeholders in
// two phases and hands the bound result to the management plane.
//
// It also owns the operator workflows around the document: quickstart
// scaffolding, importing a document into the store and exporting the store
// back out.
package manager
