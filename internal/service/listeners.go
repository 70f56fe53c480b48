// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/challenge"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/workers"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// ListenerConfig holds the cadences of the per-session loops.
type ListenerConfig struct {
	ClaimInterval time.Duration
	IdleTick      time.Duration

	// ChallengeRetryDelay is waited before answering again after a rejected
	// code.
	ChallengeRetryDelay time.Duration
}

// listeners reacts to session events other than faults.
type listeners struct {
	registry    *session.Registry
	config      ConfigStore
	acquisition AcquisitionService
	idler       IdleService
	solver      challenge.Solver
	clock       clockwork.Clock
	cfg         ListenerConfig
}

func (l *listeners) subscribe(bus *session.Bus) {
	bus.Subscribe(session.EventLoggedOn, l.loggedOn)
	bus.Subscribe(session.EventRefreshToken, l.refreshToken)
	bus.Subscribe(session.EventBanInfo, l.banInfo)
	bus.Subscribe(session.EventChallenge, l.challenge)
	bus.Subscribe(session.EventDisconnected, l.disconnected)
}

func (l *listeners) loggedOn(ctx context.Context, sess *session.Session, _ session.Event) {
	sess.StopRenewal()
	sess.MarkLoggedIn()
	sess.Log.Info().Str("generation", sess.ID).Msg("logged on")

	if !sess.BeginLoops() {
		sess.Log.Debug().Str("generation", sess.ID).Msg("loops already running")
		return
	}
	go l.startLoops(ctx, sess)
}

// startLoops builds the owned catalog, then runs the claim loop (when
// enabled) and the idle loop (when anything is owned) until the session is
// retired or expires.
func (l *listeners) startLoops(ctx context.Context, sess *session.Session) {
	if err := l.acquisition.BuildCatalog(ctx, sess); err != nil && ctx.Err() == nil {
		sess.Log.Warn().Err(err).Msg("owned catalog not built")
	}
	if l.registry.IsExpired(sess) {
		return
	}

	opts := []workers.LoopOption{workers.WithClock(l.clock), workers.WithLogger(sess.Log)}

	if l.config.Snapshot().FetchFreeEntries || sess.Account().FetchFreeEntries {
		claim := workers.NewLoop("claim", l.cfg.ClaimInterval, func(ctx context.Context) bool {
			return l.acquisition.Tick(ctx, sess)
		}, opts...)
		go claim.Run(ctx)
	}

	owned := len(sess.Document().OwnedEntries)
	if owned == 0 {
		sess.Log.Info().Msg("no entries to idle")
		return
	}
	sess.Log.Info().Int("owned", owned).Msg("owned catalog ready")

	l.idler.Start(ctx, sess)
	idle := workers.NewLoop("idle", l.cfg.IdleTick, func(ctx context.Context) bool {
		return l.idler.Tick(ctx, sess)
	}, append(opts, workers.Immediately())...)
	idle.Run(ctx)
}

func (l *listeners) refreshToken(ctx context.Context, sess *session.Session, ev session.Event) {
	if ev.Token == "" {
		return
	}

	sess.SetRefreshToken(ev.Token)
	if err := sess.Update(ctx, func(d *models.SessionDocument) { d.RefreshToken = ev.Token }, true); err != nil {
		sess.Log.Warn().Err(err).Msg("refresh token not persisted yet")
	}

	err := l.config.Write(ctx, func(c *models.FleetConfig) {
		for i := range c.Accounts {
			if c.Accounts[i].Username == sess.Username {
				c.Accounts[i].RefreshToken = ev.Token
			}
		}
	}, false)
	if err != nil {
		sess.Log.Warn().Err(err).Msg("refresh token not synced yet")
	}

	sess.Log.Info().Msg("refresh token updated")
}

func (l *listeners) banInfo(ctx context.Context, sess *session.Session, ev session.Event) {
	sess.Log.Info().Int("bans", ev.BanCount).Uints32("entries", ev.BanIDs).Msg("ban info received")

	if !l.config.Snapshot().SkipBannedEntries {
		return
	}

	ids := append([]uint32(nil), ev.BanIDs...)
	if err := sess.Update(ctx, func(d *models.SessionDocument) { d.BannedIDs = ids }, false); err != nil {
		sess.Log.Warn().Err(err).Msg("banned entries not persisted yet")
	}
}

// challenge answers a second-factor request. A rejected code is retried
// after a delay; otherwise only the first request of a login attempt is
// answered.
func (l *listeners) challenge(ctx context.Context, sess *session.Session, ev session.Event) {
	req := ev.Challenge
	if req == nil || req.Respond == nil {
		return
	}

	if req.LastCodeWrong {
		sess.Log.Warn().Msg("challenge code rejected, retrying")
		go func() {
			select {
			case <-ctx.Done():
				return
			case <-l.clock.After(l.cfg.ChallengeRetryDelay):
			}
			l.answer(ctx, sess, req)
		}()
		return
	}

	if !sess.BeginChallenge() {
		sess.Log.Debug().Msg("challenge already being answered")
		return
	}
	go l.answer(ctx, sess, req)
}

func (l *listeners) answer(ctx context.Context, sess *session.Session, req *session.ChallengeRequest) {
	code, err := l.solver.Solve(ctx, sess.Account(), req.Domain, req.LastCodeWrong)
	if err != nil {
		if ctx.Err() == nil {
			sess.Log.Error().Err(err).Msg("challenge not answered")
		}
		return
	}
	req.Respond(code)
}

func (l *listeners) disconnected(_ context.Context, sess *session.Session, ev session.Event) {
	sess.Log.Warn().Int("code", ev.Code).Str("reason", ev.Message).Msg("disconnected")
}
