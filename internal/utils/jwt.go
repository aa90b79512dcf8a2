package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/arbormail/arbormail/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken issues the signed HS256 session token the management API
// hands out at login. The registered claims carry the issuer tag under
// "iss", the administrator login under "sub" and the validity window under
// "iat" and "exp". Every parameter is required.
func GenerateJWTToken(issuer, login string, lifetime time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || login == "" || lifetime == 0 || signKey == "" {
		return models.Token{}, errors.New("issuer, login, lifetime and sign key are all required")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   login,
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("signing session token: %w", err)
	}

	return models.Token{Token: token, SignedString: signed, Login: login}, nil
}

// ValidateAndParseJWTToken verifies a compact session token and returns it
// with the administrator login extracted from the subject claim.
//
// Verification pins the signing method to HS256, so a token whose header
// names another algorithm ("none" included) fails before the key is ever
// consulted. The issuer claim must equal tokenIssuer and the token must not
// be expired.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("verifying session token: %w", err)
	}

	login, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("reading token subject: %w", err)
	}
	if login == "" {
		return models.Token{}, errors.New("token subject is empty")
	}

	return models.Token{Token: token, SignedString: tokenString, Login: login}, nil
}
