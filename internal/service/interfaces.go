package service

import (
	"context"

	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService authenticates the administrator account and manages the
// session token lifecycle for the management API.
type AuthService interface {
	Login(ctx context.Context, credentials models.Credentials) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ConfigService exposes the running configuration and its persistent
// key-value extension to the management API.
type ConfigService interface {
	// Effective returns the configuration the daemon booted with, secret
	// material redacted.
	Effective(ctx context.Context) (*config.ServerConfig, error)

	// Check runs a candidate document through the full load pipeline
	// without applying it and reports the verdict.
	Check(ctx context.Context, document []byte) models.CheckReport

	Keys(ctx context.Context, prefix string) ([]models.ConfigKey, error)
	SetKeys(ctx context.Context, entries ...models.ConfigKey) error
	DeleteKey(ctx context.Context, key string) error

	// Ping reports store health; a daemon running without a store is
	// always healthy.
	Ping(ctx context.Context) error
}
