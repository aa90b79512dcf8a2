// Package utils holds the small helpers shared between the daemon and the
// console: context keys, JSON response writing, the preconfigured HTTP
// client, JWT issuance and random secret generation.
package utils

import "context"

// contextKey keeps this package's context values collision-free; an
// unexported named type never compares equal to another package's key.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// LoginCtxKey carries the authenticated administrator login through a
// request. The auth middleware writes it, handlers read it for audit log
// lines.
var LoginCtxKey = contextKey("login")

// GetLoginFromContext returns the administrator login stamped by the auth
// middleware. ok is false when the request never passed authentication, or
// when something other than a string sits under the key.
func GetLoginFromContext(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(LoginCtxKey).(string)
	return login, ok
}
