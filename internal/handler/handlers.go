// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler assembles the transport handlers of the fleet.
package handler

import (
	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/handler/http"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers returns errNoHandlersAreCreated when the status endpoint is
// disabled.
func NewHandlers(services *service.Services, sessions http.SessionLister, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	logger.Info().Msg("creating new handlers...")
	return &Handlers{HTTP: http.NewHandler(services, sessions, logger)}, nil
}
