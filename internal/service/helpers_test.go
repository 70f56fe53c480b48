// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/mock"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

var fastRetry = utils.RetryPolicy{Attempts: 3, Delay: time.Millisecond}

const testProfile = "profile1"

// fakeConfig is an in-memory ConfigStore.
type fakeConfig struct {
	mu     sync.Mutex
	cfg    models.FleetConfig
	writes int
}

func newFakeConfig(cfg models.FleetConfig) *fakeConfig {
	return &fakeConfig{cfg: cfg}
}

func (c *fakeConfig) Snapshot() models.FleetConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

func (c *fakeConfig) Write(_ context.Context, mutate func(*models.FleetConfig), _ bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mutate != nil {
		mutate(&c.cfg)
	}
	c.writes++
	return nil
}

// fixture wires a real registry to a mocked session client.
type fixture struct {
	ctrl     *gomock.Controller
	clock    *clockwork.FakeClock
	dir      string
	bus      *session.Bus
	registry *session.Registry
	client   *mock.MockRemoteSessionClient
	catalog  *mock.MockCatalogClient
	presence *mock.MockPresenceClient
	probe    *mock.MockConnectivityProbe
	solver   *mock.MockSolver
	config   *fakeConfig

	mu    sync.Mutex
	auths []session.Credentials
}

func newFixture(t *testing.T, cfg models.FleetConfig) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:     ctrl,
		clock:    clockwork.NewFakeClockAt(testNow),
		dir:      t.TempDir(),
		bus:      session.NewBus(),
		client:   mock.NewMockRemoteSessionClient(ctrl),
		catalog:  mock.NewMockCatalogClient(ctrl),
		presence: mock.NewMockPresenceClient(ctrl),
		probe:    mock.NewMockConnectivityProbe(ctrl),
		solver:   mock.NewMockSolver(ctrl),
		config:   newFakeConfig(cfg),
	}

	events := make(chan session.Event)
	f.client.EXPECT().Events().Return((<-chan session.Event)(events)).AnyTimes()
	f.client.EXPECT().Disconnect().AnyTimes()
	f.client.EXPECT().ProfileName().Return(testProfile).AnyTimes()
	f.client.EXPECT().Authenticate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, creds session.Credentials) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.auths = append(f.auths, creds)
			return nil
		}).AnyTimes()

	driver := session.DriverFunc(func(models.Account) (session.RemoteSessionClient, error) {
		return f.client, nil
	})
	factory := func(username string) (*session.DocumentStore, error) {
		backend := store.NewLocalBackend(f.dir, username, logger.Nop())
		return store.New(backend, models.SessionDocument{}, store.WithClock(f.clock)), nil
	}
	f.registry = session.NewRegistry(context.Background(), driver, f.bus, factory, session.WithClock(f.clock))
	t.Cleanup(f.registry.Shutdown)

	return f
}

// login registers a logged-in session without a pending renewal timer.
func (f *fixture) login(t *testing.T, account models.Account) *session.Session {
	t.Helper()

	require.NoError(t, f.registry.Login(context.Background(), account))
	sess := f.registry.Current(account.Username)
	require.NotNil(t, sess)
	sess.StopRenewal()
	sess.MarkLoggedIn()
	return sess
}

func (f *fixture) authCalls() []session.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]session.Credentials(nil), f.auths...)
}

func (f *fixture) services(t *testing.T) *Services {
	t.Helper()

	cfg := config.StructuredConfig{
		App: config.App{SessionDriver: "test"},
		Workers: config.Workers{
			ClaimInterval: time.Minute,
			IdleTick:      2500 * time.Millisecond,
			RetryDelay:    time.Millisecond,
			ReloginDelay:  10 * time.Second,
			PollInterval:  10 * time.Second,
		},
	}
	s, err := NewServices(Dependencies{
		Registry: f.registry,
		Config:   f.config,
		Catalog:  f.catalog,
		Presence: f.presence,
		Probe:    f.probe,
		Solver:   f.solver,
		Clock:    f.clock,
	}, cfg)
	require.NoError(t, err)
	return s
}

func (f *fixture) acquisition() *acquisitionService {
	return &acquisitionService{
		registry: f.registry,
		config:   f.config,
		catalog:  f.catalog,
		retry:    fastRetry,
	}
}

func seedDocument(t *testing.T, sess *session.Session, mutate func(*models.SessionDocument)) {
	t.Helper()
	require.NoError(t, sess.Update(context.Background(), mutate, true))
}

func entries(ids ...uint32) []models.Entry {
	out := make([]models.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Entry{ID: id, Name: "entry"})
	}
	return out
}

func entryRange(from, n uint32) []models.Entry {
	out := make([]models.Entry, 0, n)
	for id := from; id < from+n; id++ {
		out = append(out, models.Entry{ID: id, Name: "entry"})
	}
	return out
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
