// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package main

import (
	"context"
	"fmt"

	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/internal/crypto"
	handler "github.com/arbormail/arbormail/internal/handler/http"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/manager"
	"github.com/arbormail/arbormail/internal/resolver"
	"github.com/arbormail/arbormail/internal/server"
	"github.com/arbormail/arbormail/internal/service"
	"github.com/arbormail/arbormail/internal/settings"
	"github.com/arbormail/arbormail/internal/store"
	"github.com/arbormail/arbormail/models"
)

// Build metadata injected at link time via
// -ldflags "-X main.buildVersion=... -X main.buildDate=... -X main.buildCommit=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println("arbormaild " + build.String())

	log := logger.NewLogger("arbormaild")

	daemonSettings, err := settings.GetDaemonSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading settings")
	}

	if err = logger.SetGlobalLevel(daemonSettings.LogLevel); err != nil {
		log.Fatal().Err(err).Str("level", daemonSettings.LogLevel).Msg("unknown log level")
	}

	log.Debug().
		Str("config", daemonSettings.ConfigPath).
		Str("address", daemonSettings.Management.Address).
		Bool("store", daemonSettings.Store.DSN != "").
		Msg("merged settings")

	ctx := context.Background()

	// The store is optional: without a DSN the daemon boots from the file
	// alone and the key/value endpoints answer 501.
	var configStore store.ConfigStore
	if daemonSettings.Store.DSN != "" {
		storages, storeErr := store.NewStorages(ctx, daemonSettings.Store.DSN, log)
		if storeErr != nil {
			log.Fatal().Err(storeErr).Msg("error opening config store")
		}

		configStore = storages.ConfigKeys
	}

	bootManager := manager.NewManager(manager.Options{
		ConfigPath:   daemonSettings.ConfigPath,
		ResourceBase: daemonSettings.ResourceBase,
	}, configStore, crypto.NewKeychain(), log)

	boot, err := bootManager.Boot(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("path", daemonSettings.ConfigPath).Msg("configuration rejected")
	}

	log.Info().
		Str("hostname", boot.Config.Hostname).
		Int("listeners", len(boot.Config.Listeners)).
		Int("keys", len(boot.Snapshot)).
		Msg("configuration loaded")

	// A settings-supplied secret overrides the boot-generated auth key so
	// issued tokens survive a daemon restart.
	signKey := daemonSettings.Management.TokenSecret
	if signKey == "" {
		signKey = boot.AuthKey
	}

	resolvers := config.Resolvers{
		config.SchemeEnv:  resolver.NewEnv(),
		config.SchemeFile: resolver.NewFile(daemonSettings.ResourceBase),
		config.SchemeCfg:  nil,
	}
	if configStore != nil {
		resolvers[config.SchemeStore] = resolver.NewStore(configStore)
	}

	services := service.NewServices(boot.Config, configStore, resolvers, service.AuthParams{
		AdminLogin:    boot.AdminLogin,
		SecretDigest:  boot.SecretDigest,
		TokenSignKey:  signKey,
		TokenLifetime: daemonSettings.Management.TokenLifetime,
	}, log)

	router := handler.NewHandler(services, build, log).Init()

	managementServer, err := server.NewServer(router, daemonSettings.Management.Address, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating management server")
	}

	managementServer.RunServer()

	if configStore != nil {
		if err = configStore.Close(); err != nil {
			log.Err(err).Msg("error closing config store")
		}
	}
}
