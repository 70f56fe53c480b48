// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// DefaultRenewalTimeout is how long a login may stay silent before it is
// re-entered.
const DefaultRenewalTimeout = time.Minute

// StoreFactory opens the document store of an account.
type StoreFactory func(username string) (*DocumentStore, error)

// IDGenerator issues generation ids. Ids issued by one generator must be
// unique and increasing.
type IDGenerator interface {
	Generate() string
}

// Registry holds the current session of every account.
type Registry struct {
	ctx    context.Context
	cancel context.CancelFunc

	driver         Driver
	bus            *Bus
	newStore       StoreFactory
	clock          clockwork.Clock
	ids            IDGenerator
	defaults       models.Account
	renewalTimeout time.Duration
	logger         *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	stores   map[string]*DocumentStore
	locks    map[string]*sync.Mutex
	closed   bool
}

// Option configures a [Registry].
type Option func(*Registry)

func WithClock(clock clockwork.Clock) Option {
	return func(r *Registry) { r.clock = clock }
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(r *Registry) { r.ids = ids }
}

// WithDefaults sets the lowest-precedence account values.
func WithDefaults(defaults models.Account) Option {
	return func(r *Registry) { r.defaults = defaults.Clone() }
}

func WithRenewalTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.renewalTimeout = d
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) { r.logger = log }
}

// NewRegistry constructs a registry. Sessions live at most as long as ctx.
func NewRegistry(ctx context.Context, driver Driver, bus *Bus, newStore StoreFactory, opts ...Option) *Registry {
	r := &Registry{
		driver:         driver,
		bus:            bus,
		newStore:       newStore,
		clock:          clockwork.NewRealClock(),
		ids:            utils.NewUUIDGenerator(),
		renewalTimeout: DefaultRenewalTimeout,
		logger:         logger.Nop(),
		sessions:       make(map[string]*Session),
		stores:         make(map[string]*DocumentStore),
		locks:          make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.ctx, r.cancel = context.WithCancel(ctx)

	return r
}

// Clock returns the clock shared by the registry and its sessions.
func (r *Registry) Clock() clockwork.Clock {
	return r.clock
}

// Login replaces the session of account with a new generation and starts
// authenticating it. The outcome is reported through client events; the
// returned error covers only failures to build the session.
func (r *Registry) Login(ctx context.Context, account models.Account) error {
	if strings.TrimSpace(account.Username) == "" {
		return ErrInvalidAccount
	}

	lock := r.accountLock(account.Username)
	lock.Lock()
	sess, creds, err := r.start(ctx, account)
	lock.Unlock()
	if err != nil {
		return err
	}

	if err = sess.Client.Authenticate(sess.ctx, creds); err != nil {
		sess.Log.Warn().Err(err).Msg("authenticate failed, waiting for renewal")
	}
	return nil
}

func (r *Registry) start(ctx context.Context, account models.Account) (*Session, Credentials, error) {
	if r.ctx.Err() != nil {
		return nil, Credentials{}, ErrRegistryShutdown
	}

	r.retire(account.Username)

	st, err := r.storeFor(account.Username)
	if err != nil {
		return nil, Credentials{}, fmt.Errorf("error opening session store: %w", err)
	}
	st.Read(ctx)

	merged := mergeAccount(r.defaults, account, st.Snapshot())
	if merged.Password == "" && merged.RefreshToken == "" {
		return nil, Credentials{}, ErrInvalidAccount
	}

	client, err := r.driver.NewClient(merged)
	if err != nil {
		return nil, Credentials{}, fmt.Errorf("error creating session client: %w", err)
	}

	sessCtx, cancel := context.WithCancel(r.ctx)
	sess := &Session{
		ID:        r.ids.Generate(),
		Username:  merged.Username,
		Client:    client,
		Store:     st,
		Log:       r.logger.ForAccount(merged.Username),
		ctx:       sessCtx,
		cancel:    cancel,
		status:    models.StatusLoggingIn,
		account:   merged,
		startedAt: r.clock.Now(),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		cancel()
		client.Disconnect()
		return nil, Credentials{}, ErrRegistryShutdown
	}
	r.sessions[sess.Username] = sess
	r.mu.Unlock()

	renewWith := account.Clone()
	sess.mu.Lock()
	sess.renewal = r.clock.AfterFunc(r.renewalTimeout, func() {
		go r.renew(sess, renewWith)
	})
	sess.mu.Unlock()

	go r.pump(sess)

	creds := credentialsFor(merged, r.clock.Now())
	sess.Log.Info().
		Str("generation", sess.ID).
		Bool("token", creds.UsesToken()).
		Msg("logging in")

	return sess, creds, nil
}

// credentialsFor prefers the stored token unless it is a JWT that already
// expired.
func credentialsFor(account models.Account, now time.Time) Credentials {
	creds := Credentials{AccountName: account.Username}
	if utils.TokenUsable(account.RefreshToken, now) {
		creds.RefreshToken = account.RefreshToken
		return creds
	}
	creds.Password = account.Password
	return creds
}

func (r *Registry) renew(sess *Session, account models.Account) {
	if sess.ctx.Err() != nil {
		return
	}

	sess.Log.Warn().Dur("timeout", r.renewalTimeout).Msg("login did not complete in time, renewing")
	if err := r.Login(r.ctx, account); err != nil {
		sess.Log.Error().Err(err).Msg("renewal login failed")
	}
}

// pump forwards client events to the bus until the session is retired.
func (r *Registry) pump(sess *Session) {
	events := sess.Client.Events()
	for {
		select {
		case <-sess.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			sess.StopRenewal()
			r.bus.Publish(sess.ctx, sess, ev)
		}
	}
}

// LogOff marks the current session of username as logged out and
// disconnects its client. The session stays registered until the next
// login. It is a no-op when the account has no session.
func (r *Registry) LogOff(username string) {
	sess := r.Current(username)
	if sess == nil {
		return
	}

	sess.setStatus(models.StatusLoggedOut)
	sess.Client.Disconnect()
	sess.Log.Info().Str("generation", sess.ID).Msg("logged off")
}

// IsExpired reports whether sess is no longer the live session of its
// account: the registry holds another generation or none, or either side
// is not logged in.
func (r *Registry) IsExpired(sess *Session) bool {
	if sess == nil {
		return true
	}

	current := r.Current(sess.Username)
	if current == nil || current.ID != sess.ID {
		return true
	}
	return current.Status() != models.StatusLoggedIn || sess.Status() != models.StatusLoggedIn
}

// Current returns the registered session of username, or nil.
func (r *Registry) Current(username string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[username]
}

// Sessions describes every registered session, sorted by username.
func (r *Registry) Sessions() []models.SessionInfo {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	infos := make([]models.SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	slices.SortFunc(infos, func(a, b models.SessionInfo) int {
		return strings.Compare(a.Username, b.Username)
	})
	return infos
}

// Stores returns every document store opened so far. Stores outlive the
// sessions that use them.
func (r *Registry) Stores() []*DocumentStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	stores := make([]*DocumentStore, 0, len(r.stores))
	for _, st := range r.stores {
		stores = append(stores, st)
	}
	return stores
}

// Shutdown retires every session. Later logins fail with
// ErrRegistryShutdown.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	r.closed = true
	sessions := make([]*Session, 0, len(r.sessions))
	for name, s := range r.sessions {
		sessions = append(sessions, s)
		delete(r.sessions, name)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.retire()
	}
	r.cancel()
}

func (r *Registry) retire(username string) {
	r.mu.Lock()
	old, ok := r.sessions[username]
	delete(r.sessions, username)
	r.mu.Unlock()

	if !ok {
		return
	}
	old.retire()
	old.Log.Debug().Str("generation", old.ID).Msg("session retired")
}

func (r *Registry) storeFor(username string) (*DocumentStore, error) {
	r.mu.Lock()
	st, ok := r.stores[username]
	r.mu.Unlock()
	if ok {
		return st, nil
	}

	st, err := r.newStore(username)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.stores[username] = st
	r.mu.Unlock()
	return st, nil
}

func (r *Registry) accountLock(username string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[username] = lock
	}
	return lock
}
