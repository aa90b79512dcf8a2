// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package http

import "errors"

// Sentinel errors raised while extracting the session token from the
// Authorization header. Their text is what an operator sees in a 401 body,
// so each message names what was wrong with the header.
var (
	// ErrEmptyAuthorizationHeader reports a request that carries no
	// Authorization header at all.
	ErrEmptyAuthorizationHeader = errors.New("missing Authorization header")

	// ErrInvalidAuthorizationHeader reports a header that is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("Authorization header is not a bearer token")

	// ErrEmptyToken reports a bearer scheme followed by nothing.
	ErrEmptyToken = errors.New("bearer token is empty")
)
