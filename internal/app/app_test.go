// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	_ "github.com/MKhiriev/go-fleet-keeper/internal/session/dryrun"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// fakeRepository serves one document over the contents API.
type fakeRepository struct {
	mu      sync.Mutex
	content []byte
	sha     int
	puts    int
}

func (f *fakeRepository) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content":  base64.StdEncoding.EncodeToString(f.content),
			"encoding": "base64",
			"sha":      f.tag(),
		})
	case http.MethodPut:
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.content, _ = base64.StdEncoding.DecodeString(body.Content)
		f.sha++
		f.puts++
		_ = json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{"sha": f.tag()}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeRepository) tag() string {
	return "sha" + string(rune('a'+f.sha))
}

func (f *fakeRepository) document(t *testing.T) models.FleetConfig {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	var cfg models.FleetConfig
	require.NoError(t, json.Unmarshal(f.content, &cfg))
	return cfg
}

func testConfig(url, dir string) *config.StructuredConfig {
	return &config.StructuredConfig{
		App:    config.App{SessionDriver: "dryrun"},
		Remote: config.Remote{Owner: "acme", Repo: "fleet", Branch: "main", Path: "config.json", APIURL: url},
		Storage: config.Storage{
			Driver: config.StorageDriverFile,
			Dir:    dir,
		},
		Adapter: config.Adapter{
			StoreURL:        url,
			CommunityURL:    url,
			ConnectivityURL: url,
			RequestTimeout:  time.Second,
			DetailsInterval: 10 * time.Millisecond,
		},
		Workers: config.Workers{
			ClaimInterval:       time.Minute,
			IdleTick:            time.Second,
			ConfigSyncInterval:  10 * time.Second,
			SessionSyncInterval: 10 * time.Minute,
			RetryDelay:          10 * time.Millisecond,
			RenewalTimeout:      time.Minute,
			ReloginDelay:        time.Second,
			PollInterval:        time.Second,
		},
	}
}

func TestApp_LogsFleetInAndPersistsTokens(t *testing.T) {
	repo := &fakeRepository{content: []byte(`{
		// shared fleet document
		"accounts": [{"username": "alice", "password": "pw"}]
	}`)}
	srv := httptest.NewServer(repo)
	defer srv.Close()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := NewApp(ctx, testConfig(srv.URL, dir), models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		sessions := a.registry.Sessions()
		return len(sessions) == 1 && sessions[0].Status == models.StatusLoggedIn.String()
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		account, ok := a.fleet.Snapshot().Account("alice")
		return ok && account.RefreshToken != ""
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}

	stored, ok := repo.document(t).Account("alice")
	require.True(t, ok)
	assert.NotEmpty(t, stored.RefreshToken)

	raw, err := os.ReadFile(filepath.Join(dir, "alice", store.SessionFileName))
	require.NoError(t, err)
	var doc models.SessionDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, stored.RefreshToken, doc.RefreshToken)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1", t.TempDir())
	cfg.App.SessionDriver = "missing"

	_, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.ErrorIs(t, err, session.ErrUnknownDriver)
}

func TestSessionStores_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Storage{
		Driver: config.StorageDriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "fleet.db"),
	}

	stores, err := newSessionStores(ctx, cfg, clockwork.NewRealClock(), logger.Nop())
	require.NoError(t, err)
	defer func() { require.NoError(t, stores.close()) }()

	st, err := stores.factory("alice")
	require.NoError(t, err)
	require.NoError(t, st.Write(ctx, func(d *models.SessionDocument) { d.RefreshToken = "t1" }, true))

	again, err := stores.factory("alice")
	require.NoError(t, err)
	again.Read(ctx)
	assert.Equal(t, "t1", again.Snapshot().RefreshToken)

	other, err := stores.factory("bob")
	require.NoError(t, err)
	other.Read(ctx)
	assert.Empty(t, other.Snapshot().RefreshToken)
}
