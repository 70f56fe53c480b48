// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists typed documents through pluggable backends.
//
// A [Store] keeps the working copy of one document in memory and commits it
// to its [Backend] only when the minimum inter-write delay has passed (or the
// caller forces it) and the serialized payload actually changed. Three
// backends are provided: a JSON file per account ([LocalBackend]), a row per
// document in SQLite ([SQLiteBackend]) and a document in a hosted object
// repository guarded by cached version tags ([RemoteBackend]).
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"dario.cat/mergo"
	"github.com/jonboulle/clockwork"
	"github.com/tidwall/jsonc"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
)

// Delay bounds accepted by [Store.SetDelay].
const (
	MinDelay = time.Second
	MaxDelay = time.Duration(math.MaxInt32) * time.Millisecond
)

// Backend is the read/write contract of a document location.
type Backend interface {
	// Init bootstraps the location, seeding it with seed when it holds
	// nothing yet.
	Init(ctx context.Context, seed []byte) error

	// Load returns the stored payload, or nil when there is none yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored payload.
	Save(ctx context.Context, payload []byte) error
}

// Store is a typed document with debounced, change-aware persistence.
type Store[T any] struct {
	backend Backend
	clock   clockwork.Clock
	logger  *logger.Logger
	seed    T

	mu        sync.Mutex
	data      T
	updatedAt time.Time
	delay     time.Duration
	committed []byte

	// version counts mutations; saved is the version last committed.
	version uint64
	saved   uint64

	saveMu      sync.Mutex
	initialized atomic.Bool
}

// Option configures a [Store].
type Option func(*storeOptions)

type storeOptions struct {
	clock  clockwork.Clock
	logger *logger.Logger
	delay  time.Duration
}

// WithClock replaces the wall clock used for the delay gate.
func WithClock(clock clockwork.Clock) Option {
	return func(o *storeOptions) { o.clock = clock }
}

// WithLogger sets the logger used for swallowed backend failures.
func WithLogger(log *logger.Logger) Option {
	return func(o *storeOptions) { o.logger = log }
}

// WithDelay sets the initial minimum inter-write delay.
func WithDelay(d time.Duration) Option {
	return func(o *storeOptions) { o.delay = d }
}

// New constructs a store over backend. seed is written to the backend only
// when bootstrap finds the location empty; the in-memory document starts as
// the zero value of T.
func New[T any](backend Backend, seed T, opts ...Option) *Store[T] {
	o := storeOptions{
		clock:  clockwork.NewRealClock(),
		logger: logger.Nop(),
		delay:  MinDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store[T]{
		backend: backend,
		clock:   o.clock,
		logger:  o.logger,
		seed:    seed,
	}
	s.SetDelay(o.delay)

	return s
}

// SetDelay sets the minimum inter-write delay, clamped to
// [MinDelay, MaxDelay].
func (s *Store[T]) SetDelay(d time.Duration) {
	d = min(max(d.Truncate(time.Millisecond), MinDelay), MaxDelay)

	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// Delay returns the current minimum inter-write delay.
func (s *Store[T]) Delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

// UpdatedAt returns the time of the last committed write.
func (s *Store[T]) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Read loads the backend payload and merges it under the in-memory
// document: fields already set in memory are kept. While memory holds
// uncommitted changes the backend is not consulted, since those changes may
// have zeroed fields the backend still carries. Backend failures are logged
// and leave memory unchanged.
func (s *Store[T]) Read(ctx context.Context) {
	s.init(ctx)

	if s.dirty() {
		s.logger.Debug().Msg("store holds uncommitted changes, skipping read")
		return
	}

	payload, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("store read failed, keeping in-memory document")
		return
	}
	if len(payload) == 0 {
		return
	}

	var loaded T
	if err = json.Unmarshal(jsonc.ToJSON(payload), &loaded); err != nil {
		s.logger.Warn().Err(err).Msg("store read returned an undecodable document")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != s.saved {
		return
	}
	if err = mergo.Merge(&s.data, loaded); err != nil {
		s.logger.Warn().Err(err).Msg("store read could not merge document")
	}
}

// dirty reports whether memory differs from the last committed payload
// because of a mutation.
func (s *Store[T]) dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version == s.saved {
		return false
	}
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err == nil && bytes.Equal(payload, s.committed) {
		s.saved = s.version
		return false
	}
	return true
}

// Write applies mutate to the in-memory document and commits it when the
// delay has elapsed since the last commit or force is set, and the
// serialization differs from the last committed one.
//
// mutate may be nil to only flush. A backend failure is returned; the
// document stays uncommitted and the next Write retries it. Commits are
// serialized and always carry the latest in-memory document.
func (s *Store[T]) Write(ctx context.Context, mutate func(*T), force bool) error {
	s.init(ctx)

	s.mu.Lock()
	if mutate != nil {
		mutate(&s.data)
		s.version++
	}
	if s.waiting() && !force {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.waiting() && !force {
		s.mu.Unlock()
		return nil
	}
	version := s.version
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("error encoding document: %w", err)
	}
	if bytes.Equal(payload, s.committed) {
		s.saved = version
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err = s.backend.Save(ctx, payload); err != nil {
		return fmt.Errorf("error committing document: %w", err)
	}

	s.mu.Lock()
	s.updatedAt = s.clock.Now()
	s.committed = payload
	s.saved = version
	s.mu.Unlock()

	return nil
}

// waiting reports whether the minimum delay since the last commit is still
// running. s.mu must be held.
func (s *Store[T]) waiting() bool {
	return !s.updatedAt.IsZero() && s.clock.Now().Before(s.updatedAt.Add(s.delay))
}

// Flush commits pending in-memory changes subject to the usual gate.
func (s *Store[T]) Flush(ctx context.Context) error {
	return s.Write(ctx, nil, false)
}

// Snapshot returns a deep copy of the in-memory document.
func (s *Store[T]) Snapshot() T {
	s.mu.Lock()
	raw, err := json.Marshal(s.data)
	s.mu.Unlock()

	var out T
	if err != nil {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

// init runs the backend bootstrap at most once per store. Callers racing
// before the latch trips may both attempt it.
func (s *Store[T]) init(ctx context.Context) {
	if s.initialized.Load() {
		return
	}
	s.initialized.Store(true)

	seed, err := json.MarshalIndent(s.seed, "", "  ")
	if err != nil {
		s.logger.Error().Err(err).Msg("store seed is not encodable")
		return
	}
	if err = s.backend.Init(ctx, seed); err != nil {
		s.logger.Warn().Err(err).Msg("store bootstrap failed")
	}
}
