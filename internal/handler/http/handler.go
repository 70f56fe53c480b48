// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the read-only status endpoint of the fleet.
//
// Requests are traced and access-logged by middleware before reaching the
// handlers, which only read from the session registry and the app info
// service.
package http

import (
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// SessionLister is the registry view served by /api/sessions.
type SessionLister interface {
	Sessions() []models.SessionInfo
}

type Handler struct {
	services *service.Services
	sessions SessionLister

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions SessionLister, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		sessions: sessions,
		logger:   logger,
	}
}
