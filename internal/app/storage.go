// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// FleetStore is the shared fleet config document.
type FleetStore = store.Store[models.FleetConfig]

func newFleetStore(api adapter.ObjectAPI, cfg config.Remote, clock clockwork.Clock, log *logger.Logger) *FleetStore {
	ref := adapter.ObjectRef{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Branch: cfg.Branch,
		Path:   cfg.Path,
	}
	backend := store.NewRemoteBackend(api, ref, store.NewVersionCache(), log)

	return store.New(backend, models.FleetConfig{}, store.WithClock(clock), store.WithLogger(log))
}

// sessionStores builds the per-account document stores on the configured
// local driver. close releases the shared database, if any.
type sessionStores struct {
	factory session.StoreFactory
	db      *store.DB
}

func newSessionStores(ctx context.Context, cfg config.Storage, clock clockwork.Clock, log *logger.Logger) (*sessionStores, error) {
	s := &sessionStores{}

	var backendFor func(username string) store.Backend
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		db, err := store.NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error migrating session database: %w", err)
		}
		s.db = db
		backendFor = func(username string) store.Backend {
			return store.NewSQLiteBackend(db, username, log.ForAccount(username))
		}

	default:
		backendFor = func(username string) store.Backend {
			return store.NewLocalBackend(cfg.Dir, username, log.ForAccount(username))
		}
	}

	s.factory = func(username string) (*session.DocumentStore, error) {
		return store.New(backendFor(username), models.SessionDocument{},
			store.WithClock(clock),
			store.WithLogger(log.ForAccount(username)),
		), nil
	}
	return s, nil
}

func (s *sessionStores) close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
