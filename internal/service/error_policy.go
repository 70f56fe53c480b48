// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// ErrorPolicyConfig holds the recovery timings.
type ErrorPolicyConfig struct {
	// ReloginDelay separates a handled fault from the next login.
	ReloginDelay time.Duration

	// PollInterval paces presence and connectivity polling.
	PollInterval time.Duration
}

type errorPolicy struct {
	registry *session.Registry
	config   ConfigStore
	presence adapter.PresenceClient
	probe    adapter.ConnectivityProbe
	clock    clockwork.Clock
	timings  ErrorPolicyConfig
}

func NewErrorPolicy(registry *session.Registry, config ConfigStore, presence adapter.PresenceClient, probe adapter.ConnectivityProbe, clock clockwork.Clock, timings ErrorPolicyConfig) ErrorPolicy {
	return &errorPolicy{
		registry: registry,
		config:   config,
		presence: presence,
		probe:    probe,
		clock:    clock,
		timings:  timings,
	}
}

// waitFunc blocks until a recovery precondition holds or ctx is done.
type waitFunc func(ctx context.Context, sess *session.Session) error

// Handle classifies ev.Err, disconnects the session when the fault requires
// it and, once the session is expired, schedules a re-login with a copy of
// the account config taken before any mutation. Waiting happens on a
// goroutine bound to ctx.
func (p *errorPolicy) Handle(ctx context.Context, sess *session.Session, ev session.Event) {
	account := p.currentAccount(sess)
	log := sess.Log.With().Err(ev.Err).Logger()

	var wait waitFunc
	switch {
	case errors.Is(ev.Err, models.ErrAuthRejected) && sess.Account().RefreshToken != "":
		log.Warn().Msg("refresh token rejected, retrying with credentials")
		p.registry.LogOff(sess.Username)
		p.discardToken(ctx, sess)
		account.RefreshToken = ""

	case errors.Is(ev.Err, models.ErrRateLimited):
		cooldown := p.config.Snapshot().Refresh()
		log.Warn().Dur("cooldown", cooldown).Msg("rate limited, cooling down")
		p.registry.LogOff(sess.Username)
		wait = func(ctx context.Context, _ *session.Session) error {
			return p.sleep(ctx, cooldown)
		}

	case errors.Is(ev.Err, models.ErrSessionSuperseded):
		log.Warn().Msg("logged in elsewhere, waiting for the account to go offline")
		p.registry.LogOff(sess.Username)
		wait = p.waitForPresence

	case errors.Is(ev.Err, models.ErrTransportUnavailable), errors.Is(ev.Err, models.ErrTransportTimeout):
		log.Warn().Msg("connection lost, waiting for the network")
		p.registry.LogOff(sess.Username)
		wait = func(ctx context.Context, sess *session.Session) error {
			if err := p.waitForConnection(ctx); err != nil {
				return err
			}
			return p.waitForPresence(ctx, sess)
		}

	default:
		log.Error().Msg("session fault")
	}

	go p.recover(ctx, sess, account, wait)
}

func (p *errorPolicy) recover(ctx context.Context, sess *session.Session, account models.Account, wait waitFunc) {
	if wait != nil {
		if err := wait(ctx, sess); err != nil {
			return
		}
	}
	if !p.registry.IsExpired(sess) {
		return
	}

	if err := p.sleep(ctx, p.timings.ReloginDelay); err != nil {
		return
	}

	sess.Log.Info().Msg("logging in again after fault")
	if err := p.registry.Login(context.WithoutCancel(ctx), account); err != nil {
		sess.Log.Error().Err(err).Msg("re-login failed")
	}
}

// currentAccount returns a copy of the shared config of the account, or of
// the session account when the config no longer lists it.
func (p *errorPolicy) currentAccount(sess *session.Session) models.Account {
	if account, ok := p.config.Snapshot().Account(sess.Username); ok {
		return account
	}
	return sess.Account()
}

func (p *errorPolicy) discardToken(ctx context.Context, sess *session.Session) {
	sess.SetRefreshToken("")

	if err := sess.Update(ctx, func(d *models.SessionDocument) { d.RefreshToken = "" }, true); err != nil {
		sess.Log.Warn().Err(err).Msg("discarded token not persisted yet")
	}

	err := p.config.Write(ctx, func(c *models.FleetConfig) {
		for i := range c.Accounts {
			if c.Accounts[i].Username == sess.Username {
				c.Accounts[i].RefreshToken = ""
			}
		}
	}, false)
	if err != nil {
		sess.Log.Warn().Err(err).Msg("discarded token not synced yet")
	}
}

// waitForPresence polls the public profile until it reads offline. It is
// best effort: anything but a clean offline reading keeps waiting.
func (p *errorPolicy) waitForPresence(ctx context.Context, sess *session.Session) error {
	profile := sess.Client.ProfileName()
	if profile == "" {
		return nil
	}

	for {
		presence, err := p.presence.ProfilePresence(ctx, profile)
		if err == nil && presence == models.PresenceOffline {
			return nil
		}
		sess.Log.Debug().Err(err).Stringer("presence", presence).Msg("account still present elsewhere")

		if err = p.sleep(ctx, p.timings.PollInterval); err != nil {
			return err
		}
	}
}

func (p *errorPolicy) waitForConnection(ctx context.Context) error {
	for !p.probe.Reachable(ctx) {
		if err := p.sleep(ctx, p.timings.PollInterval); err != nil {
			return err
		}
	}
	return nil
}

func (p *errorPolicy) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.clock.After(d):
		return nil
	}
}
