// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. A positive requestTimeout bounds every request.
func (h *Handler) Init(requestTimeout time.Duration) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	if requestTimeout > 0 {
		router.Use(middleware.Timeout(requestTimeout))
	}

	router.Get("/healthz", h.getHealth)
	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getVersion)
		r.Get("/sessions", h.getSessions)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
