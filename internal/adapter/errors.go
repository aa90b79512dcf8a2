package adapter

import "errors"

// Sentinel errors mapped from management API status codes. Wrapped errors
// carry the operator-facing message from the response body.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrNotSupported = errors.New("not supported by this daemon")
	ErrUnavailable  = errors.New("temporarily unavailable")
	ErrInternal     = errors.New("internal server error")
)
