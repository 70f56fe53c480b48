// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the fleet together: shared config store, session
// registry, services, periodic sync tasks and the optional status server.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/challenge"
	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/handler"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/server"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/workers"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

const shutdownFlushTimeout = 30 * time.Second

type App struct {
	cfg    *config.StructuredConfig
	logger *logger.Logger

	fleet    *FleetStore
	stores   *sessionStores
	registry *session.Registry
	services *service.Services
	workers  *workers.Workers
	server   server.Server
}

// Option customizes NewApp.
type Option func(*options)

type options struct {
	clock  clockwork.Clock
	prompt challenge.PromptFunc
}

// WithClock replaces the wall clock of every component.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithPrompt replaces the terminal prompt used for challenge codes.
func WithPrompt(prompt challenge.PromptFunc) Option {
	return func(o *options) { o.prompt = prompt }
}

// NewApp builds every component. ctx bounds the lifetime of all sessions.
// Any error is a bootstrap failure.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger, opts ...Option) (*App, error) {
	o := options{clock: clockwork.NewRealClock(), prompt: challenge.TerminalPrompt}
	for _, opt := range opts {
		opt(&o)
	}

	driver, err := session.Open(cfg.App.SessionDriver)
	if err != nil {
		return nil, err
	}

	objectAPI, err := adapter.NewGitHubObjectAPI(cfg.Remote.APIURL, cfg.Remote.Token, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		return nil, err
	}
	catalog, err := adapter.NewStoreCatalogClient(cfg.Adapter.StoreURL, cfg.Adapter.RequestTimeout, cfg.Adapter.DetailsInterval, log)
	if err != nil {
		return nil, err
	}
	presence, err := adapter.NewCommunityPresenceClient(cfg.Adapter.CommunityURL, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		return nil, err
	}
	probe := adapter.NewHTTPConnectivityProbe(cfg.Adapter.ConnectivityURL, cfg.Adapter.RequestTimeout)

	stores, err := newSessionStores(ctx, cfg.Storage, o.clock, log)
	if err != nil {
		return nil, fmt.Errorf("error creating session stores: %w", err)
	}

	a := &App{
		cfg:    cfg,
		logger: log,
		fleet:  newFleetStore(objectAPI, cfg.Remote, o.clock, log.GetChildLogger()),
		stores: stores,
	}

	bus := session.NewBus()
	a.registry = session.NewRegistry(ctx, driver, bus, stores.factory,
		session.WithClock(o.clock),
		session.WithRenewalTimeout(cfg.Workers.RenewalTimeout),
		session.WithLogger(log),
	)

	a.services, err = service.NewServices(service.Dependencies{
		Registry:  a.registry,
		Config:    a.fleet,
		Catalog:   catalog,
		Presence:  presence,
		Probe:     probe,
		Solver:    challenge.NewSolver(o.clock, o.prompt, log),
		Clock:     o.clock,
		BuildInfo: build,
	}, *cfg)
	if err != nil {
		_ = stores.close()
		return nil, err
	}
	a.services.Subscribe(bus)

	a.workers = workers.NewWorkers(a.syncWorkers(o.clock)...)

	if err = a.initServer(); err != nil {
		_ = stores.close()
		return nil, err
	}

	return a, nil
}

// syncWorkers flush the shared config every ConfigSyncInterval (delay = the
// fleet refresh interval) and every session document every
// SessionSyncInterval.
func (a *App) syncWorkers(clock clockwork.Clock) []workers.Worker {
	opts := []workers.LoopOption{workers.WithClock(clock), workers.WithLogger(a.logger)}

	configSync := workers.NewSyncWorker("config-sync", a.cfg.Workers.ConfigSyncInterval,
		func() time.Duration { return a.fleet.Snapshot().Refresh() },
		func() []workers.Flusher { return []workers.Flusher{a.fleet} },
		opts...,
	)
	sessionSync := workers.NewSyncWorker("session-sync", a.cfg.Workers.SessionSyncInterval,
		func() time.Duration { return a.cfg.Workers.SessionSyncInterval },
		a.sessionFlushers,
		opts...,
	)
	return []workers.Worker{configSync, sessionSync}
}

func (a *App) sessionFlushers() []workers.Flusher {
	stores := a.registry.Stores()
	flushers := make([]workers.Flusher, 0, len(stores))
	for _, st := range stores {
		flushers = append(flushers, st)
	}
	return flushers
}

func (a *App) initServer() error {
	handlers, err := handler.NewHandlers(a.services, a.registry, a.cfg.Server, a.logger)
	if handler.IsDisabled(err) {
		a.logger.Info().Msg("status endpoint disabled")
		return nil
	}
	if err != nil {
		return err
	}

	a.server, err = server.NewServer(handlers, a.cfg.Server, a.logger)
	return err
}

// Run reads the shared config, logs every account in and runs the periodic
// tasks until ctx is cancelled. It then retires every session and force
// flushes all documents.
func (a *App) Run(ctx context.Context) error {
	a.fleet.Read(ctx)

	fleet := a.fleet.Snapshot()
	if len(fleet.Accounts) == 0 {
		a.logger.Warn().Msg("fleet config lists no accounts")
	}
	for _, account := range fleet.Accounts {
		if err := a.registry.Login(ctx, account); err != nil {
			a.logger.ForAccount(account.Username).Error().Err(err).Msg("account skipped")
		}
	}

	if a.server != nil {
		go a.server.RunServer()
	}

	a.logger.Info().Int("accounts", len(fleet.Accounts)).Msg("fleet started")
	a.workers.Run(ctx)

	return a.shutdown(ctx)
}

func (a *App) shutdown(ctx context.Context) error {
	a.logger.Info().Msg("shutting down")

	if a.server != nil {
		a.server.Shutdown()
	}
	a.registry.Shutdown()

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownFlushTimeout)
	defer cancel()

	var errs []error
	if err := a.fleet.Write(flushCtx, nil, true); err != nil {
		errs = append(errs, fmt.Errorf("error flushing fleet config: %w", err))
	}
	for _, st := range a.registry.Stores() {
		if err := st.Write(flushCtx, nil, true); err != nil {
			errs = append(errs, fmt.Errorf("error flushing session document: %w", err))
		}
	}
	if err := a.stores.close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing session database: %w", err))
	}

	return errors.Join(errs...)
}
