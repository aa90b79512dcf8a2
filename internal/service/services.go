package service

import (
	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/store"
)

type Services struct {
	AuthService   AuthService
	ConfigService ConfigService
}

// NewServices wires the management-plane services over the booted
// configuration snapshot. configStore may be nil when the daemon runs
// without a store.
func NewServices(snapshot *config.ServerConfig, configStore store.ConfigStore, resolvers config.Resolvers, auth AuthParams, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(auth, logger),
		ConfigService: NewConfigService(snapshot, configStore, resolvers, logger),
	}
}
