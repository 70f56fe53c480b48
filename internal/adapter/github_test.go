// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

var testRef = ObjectRef{Owner: "acme", Repo: "fleet", Branch: "main", Path: "conf/fleet.json"}

func newTestObjectAPI(t *testing.T, serverURL string) ObjectAPI {
	t.Helper()
	api, err := NewGitHubObjectAPI(serverURL, "ghp_test", time.Second, logger.Nop())
	require.NoError(t, err)
	return api
}

// ── GetContent ──────────────────────────────────────────────────────────────

func TestGetContent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/acme/fleet/contents/conf/fleet.json", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":"e30=\n","encoding":"base64","sha":"abc"}`))
	}))
	defer srv.Close()

	got, err := newTestObjectAPI(t, srv.URL).GetContent(context.Background(), testRef)

	require.NoError(t, err)
	assert.Equal(t, "abc", got.VersionTag)
	assert.Equal(t, "e30=\n", got.Content)
}

func TestGetContent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	_, err := newTestObjectAPI(t, srv.URL).GetContent(context.Background(), testRef)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetContent_MissingSHA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":"e30="}`))
	}))
	defer srv.Close()

	_, err := newTestObjectAPI(t, srv.URL).GetContent(context.Background(), testRef)

	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

// ── CreateOrUpdate ──────────────────────────────────────────────────────────

func TestCreateOrUpdate_SendsVersionTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/acme/fleet/contents/conf/fleet.json", r.URL.Path)

		var body updateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "abc", body.SHA)
		assert.Equal(t, "main", body.Branch)
		assert.Equal(t, "e30=", body.Content)
		assert.Equal(t, "from_server", body.Message)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":{"sha":"def"}}`))
	}))
	defer srv.Close()

	tag, err := newTestObjectAPI(t, srv.URL).CreateOrUpdate(context.Background(), testRef, "e30=", "abc", "from_server")

	require.NoError(t, err)
	assert.Equal(t, "def", tag)
}

func TestCreateOrUpdate_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"sha mismatch"}`))
	}))
	defer srv.Close()

	_, err := newTestObjectAPI(t, srv.URL).CreateOrUpdate(context.Background(), testRef, "e30=", "stale", "m")

	assert.ErrorIs(t, err, models.ErrRemoteWriteConflict)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://api.github.com/", "https://api.github.com", false},
		{"api.github.com", "https://api.github.com", false},
		{"http://127.0.0.1:8080", "http://127.0.0.1:8080", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "conf/fleet.json", escapePath("/conf/fleet.json"))
	assert.Equal(t, "my%20dir/a%3Fb.json", escapePath("my dir/a?b.json"))
}
