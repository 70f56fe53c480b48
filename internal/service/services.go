// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the session behaviour of the fleet: catalog
// acquisition, idle rotation, fault recovery and the listeners that start
// them from session events.
package service

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/challenge"
	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	Registry  *session.Registry
	Config    ConfigStore
	Catalog   adapter.CatalogClient
	Presence  adapter.PresenceClient
	Probe     adapter.ConnectivityProbe
	Solver    challenge.Solver
	Clock     clockwork.Clock
	BuildInfo models.AppBuildInfo
}

type Services struct {
	AppInfoService AppInfoService
	Acquisition    AcquisitionService
	Idler          IdleService
	ErrorPolicy    ErrorPolicy

	listeners *listeners
}

func NewServices(deps Dependencies, cfg config.StructuredConfig) (*Services, error) {
	if deps.Registry == nil || deps.Config == nil || deps.Catalog == nil ||
		deps.Presence == nil || deps.Probe == nil || deps.Solver == nil {
		return nil, fmt.Errorf("%w: registry, config, catalog, presence, probe and solver are required", ErrMissingDependency)
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	retry := utils.RetryPolicy{Attempts: utils.DefaultRetryPolicy.Attempts, Delay: cfg.Workers.RetryDelay}

	acquisition := NewAcquisitionService(deps.Registry, deps.Config, deps.Catalog, retry)
	idler := NewIdleService(deps.Registry, deps.Config, acquisition, deps.Clock)

	return &Services{
		AppInfoService: NewAppInfoService(deps.BuildInfo, cfg.App, deps.Clock),
		Acquisition:    acquisition,
		Idler:          idler,
		ErrorPolicy: NewErrorPolicy(deps.Registry, deps.Config, deps.Presence, deps.Probe, deps.Clock, ErrorPolicyConfig{
			ReloginDelay: cfg.Workers.ReloginDelay,
			PollInterval: cfg.Workers.PollInterval,
		}),
		listeners: &listeners{
			registry:    deps.Registry,
			config:      deps.Config,
			acquisition: acquisition,
			idler:       idler,
			solver:      deps.Solver,
			clock:       deps.Clock,
			cfg: ListenerConfig{
				ClaimInterval:       cfg.Workers.ClaimInterval,
				IdleTick:            cfg.Workers.IdleTick,
				ChallengeRetryDelay: cfg.Workers.RetryDelay,
			},
		},
	}, nil
}

// Subscribe registers the error policy and the session listeners on bus.
func (s *Services) Subscribe(bus *session.Bus) {
	bus.Subscribe(session.EventError, s.ErrorPolicy.Handle)
	s.listeners.subscribe(bus)
}
