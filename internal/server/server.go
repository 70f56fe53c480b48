// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"fmt"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/handler"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer binds the status listener. The address is bound eagerly so a
// port conflict fails the bootstrap instead of a background goroutine.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	logger.Info().Msg("creating new server...")
	httpServer, err := newHTTPServer(handlers.HTTP.Init(cfg.RequestTimeout), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error binding status server to %s: %w", cfg.HTTPAddress, err)
	}

	return &server{httpServer: httpServer, logger: logger}, nil
}

func (s *server) RunServer() {
	s.logger.Info().Str("address", s.httpServer.Addr()).Msg("Launching HTTP server")
	s.httpServer.RunServer()
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")
}
