// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

const (
	// MaxActiveEntries caps the working set passed to SetActiveEntries.
	MaxActiveEntries = 32

	minIdleWindow = 60
	maxIdleWindow = 120
)

type idleService struct {
	registry    *session.Registry
	config      ConfigStore
	acquisition AcquisitionService
	clock       clockwork.Clock
}

func NewIdleService(registry *session.Registry, config ConfigStore, acquisition AcquisitionService, clock clockwork.Clock) IdleService {
	return &idleService{
		registry:    registry,
		config:      config,
		acquisition: acquisition,
		clock:       clock,
	}
}

func (s *idleService) Start(ctx context.Context, sess *session.Session) {
	refreshAt := s.clock.Now().Add(s.config.Snapshot().Refresh())
	err := sess.Update(ctx, func(d *models.SessionDocument) {
		d.IdleUntil = time.Time{}
		d.RefreshAt = refreshAt
	}, false)
	if err != nil {
		sess.Log.Warn().Err(err).Msg("idle schedule not persisted yet")
	}
}

func (s *idleService) Tick(ctx context.Context, sess *session.Session) bool {
	if s.registry.IsExpired(sess) {
		return false
	}

	now := s.clock.Now()
	doc := sess.Document()

	if now.After(doc.RefreshAt) {
		if err := s.acquisition.BuildCatalog(ctx, sess); err != nil && ctx.Err() == nil {
			sess.Log.Warn().Err(err).Msg("owned catalog refresh failed")
		}
		s.update(ctx, sess, func(d *models.SessionDocument) {
			d.RefreshAt = now.Add(s.config.Snapshot().Refresh())
		})
	}

	if !now.Before(doc.IdleUntil) {
		s.rotate(ctx, sess, now)
	}
	return true
}

// rotate picks a new random working set and idle window.
func (s *idleService) rotate(ctx context.Context, sess *session.Session, now time.Time) {
	ids := models.EntryIDs(sess.Document().OwnedEntries)
	if len(ids) == 0 {
		return
	}

	window := time.Duration(minIdleWindow+rand.IntN(maxIdleWindow-minIdleWindow+1)) * time.Minute
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	ids = ids[:min(MaxActiveEntries, len(ids))]

	if err := sess.Client.SetActiveEntries(ctx, ids); err != nil {
		sess.Log.Warn().Err(err).Msg("active entries not updated")
	}
	s.update(ctx, sess, func(d *models.SessionDocument) {
		d.IdleUntil = now.Add(window)
	})

	sess.Log.Info().
		Str("window", window.String()).
		Uints32("entries", ids).
		Msg("idling")
}

func (s *idleService) update(ctx context.Context, sess *session.Session, mutate func(*models.SessionDocument)) {
	if err := sess.Update(ctx, mutate, false); err != nil {
		sess.Log.Warn().Err(err).Msg("idle schedule not persisted yet")
	}
}
