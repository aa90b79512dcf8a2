package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongSecret         = errors.New("wrong login or secret")

	// ErrSessionsNotConfigured is returned by Login when no administrator
	// secret digest is configured, so no session can ever be established.
	ErrSessionsNotConfigured = errors.New("no administrator secret is configured")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrStoreNotConfigured is returned by store-backed operations when the
	// daemon runs without a config store (empty DSN).
	ErrStoreNotConfigured = errors.New("config store is not configured")
)
