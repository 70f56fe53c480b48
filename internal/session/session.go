// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// DocumentStore is the persisted document of one account.
type DocumentStore = store.Store[models.SessionDocument]

// Session is one generation of a live account session. A new Session, with
// a new ID, is created on every login of the account.
type Session struct {
	ID       string
	Username string
	Client   RemoteSessionClient
	Store    *DocumentStore
	Log      *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	status     models.SessionStatus
	account    models.Account
	challenged bool
	looping    bool
	renewal    clockwork.Timer
	startedAt  time.Time
}

// Context is cancelled when the session is retired.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Status returns the lifecycle state.
func (s *Session) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) setStatus(status models.SessionStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// MarkLoggedIn completes the login and clears the challenge flag.
func (s *Session) MarkLoggedIn() {
	s.mu.Lock()
	s.status = models.StatusLoggedIn
	s.challenged = false
	s.mu.Unlock()
}

// Account returns a copy of the effective account of this session.
func (s *Session) Account() models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.Clone()
}

// SetRefreshToken replaces the token kept in the session account.
func (s *Session) SetRefreshToken(token string) {
	s.mu.Lock()
	s.account.RefreshToken = token
	s.mu.Unlock()
}

// BeginChallenge reports whether a challenge may be solved now. Only the
// first call per login attempt returns true.
func (s *Session) BeginChallenge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.challenged {
		return false
	}
	s.challenged = true
	return true
}

// BeginLoops reports whether the background loops of this generation may
// start. Only the first call returns true.
func (s *Session) BeginLoops() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.looping {
		return false
	}
	s.looping = true
	return true
}

// StopRenewal cancels the renewal timer. It is safe to call repeatedly.
func (s *Session) StopRenewal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renewal != nil {
		s.renewal.Stop()
		s.renewal = nil
	}
}

// Document returns a copy of the persisted document.
func (s *Session) Document() models.SessionDocument {
	return s.Store.Snapshot()
}

// Update mutates the persisted document and commits it subject to the store
// gate.
func (s *Session) Update(ctx context.Context, mutate func(*models.SessionDocument), force bool) error {
	return s.Store.Write(ctx, mutate, force)
}

// Info describes the session for the status endpoint.
func (s *Session) Info() models.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionInfo{
		Username:     s.Username,
		GenerationID: s.ID,
		Status:       s.status.String(),
		StartedAt:    s.startedAt,
	}
}

// retire stops every activity bound to the session and releases its client.
func (s *Session) retire() {
	s.StopRenewal()
	s.cancel()

	s.mu.Lock()
	connected := s.status != models.StatusLoggedOut
	s.status = models.StatusLoggedOut
	s.mu.Unlock()

	if connected {
		s.Client.Disconnect()
	}
}
