// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

// Package http exposes the daemon's management API: session issuance,
// configuration inspection and the config-store key endpoints.
package http

import (
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/service"
	"github.com/arbormail/arbormail/internal/utils"
	"github.com/arbormail/arbormail/models"
)

// Handler owns the management route tree. All endpoint methods hang off it
// so they share one service layer and one logger.
type Handler struct {
	services *service.Services

	// build is the linker-injected build metadata served by GET /api/version.
	build models.BuildInfo

	// requestIDs generates time-ordered identifiers for the request-ID
	// middleware.
	requestIDs *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler wires the service layer into a Handler. Routes are not
// registered here; call [Handler.Init] for the ready-to-serve router.
func NewHandler(services *service.Services, build models.BuildInfo, logger *logger.Logger) *Handler {
	return &Handler{
		services:   services,
		build:      build,
		requestIDs: utils.NewUUIDGenerator(),
		logger:     logger,
	}
}
