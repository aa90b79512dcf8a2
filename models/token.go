package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a management API session. The daemon issues one per successful
// login and the console presents its compact form on every request.
//
// The embedded [jwt.Token] and [jwt.RegisteredClaims] keep the parsed
// form around so claims can be read without re-parsing the string.
type Token struct {
	// Token is the parsed JWT. Never serialized; clients only ever see
	// the compact string.
	*jwt.Token `json:"-"`

	// RegisteredClaims exposes the RFC 7519 claim set (sub, exp, iss, ...).
	jwt.RegisteredClaims

	// SignedString is the compact JWS form, the value that travels in
	// the Authorization header.
	SignedString string `json:"token"`

	// Login caches the administrator login from the "sub" claim so
	// handlers do not re-read claims on every request. Server side only.
	Login string `json:"-"`
}

// GetLogin reads the administrator login out of the "sub" claim.
// A missing or empty subject is an error: a session without an
// identity cannot be audited.
func (t *Token) GetLogin() (string, error) {
	login, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting login from token: %w", err)
	}
	if login == "" {
		return "", fmt.Errorf("token subject claim is empty")
	}

	return login, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
