// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

type stubAppInfo struct {
	info models.AppInfo
}

func (s stubAppInfo) GetAppInfo(context.Context) models.AppInfo { return s.info }

type stubSessions []models.SessionInfo

func (s stubSessions) Sessions() []models.SessionInfo { return s }

func newTestRouter(sessions SessionLister, log *logger.Logger) http.Handler {
	services := &service.Services{AppInfoService: stubAppInfo{info: models.AppInfo{
		Version:       "v1.0.0",
		SessionDriver: "dryrun",
		Uptime:        "1m0s",
	}}}
	return NewHandler(services, sessions, log).Init(time.Second)
}

func serve(t *testing.T, h http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, newTestRouter(stubSessions(nil), logger.Nop()), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestVersion(t *testing.T) {
	rec := serve(t, newTestRouter(stubSessions(nil), logger.Nop()), http.MethodGet, "/api/version", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var info models.AppInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "dryrun", info.SessionDriver)
}

func TestSessions(t *testing.T) {
	started := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		sessions stubSessions
		wantBody string
	}{
		{
			name:     "empty fleet",
			sessions: nil,
			wantBody: `[]`,
		},
		{
			name: "live sessions",
			sessions: stubSessions{
				{Username: "alice", GenerationID: "g1", Status: "logged_in", StartedAt: started},
				{Username: "bob", GenerationID: "g2", Status: "logging_in", StartedAt: started},
			},
			wantBody: `[
				{"username":"alice","generationId":"g1","status":"logged_in","startedAt":"2026-01-01T12:00:00Z"},
				{"username":"bob","generationId":"g2","status":"logging_in","startedAt":"2026-01-01T12:00:00Z"}
			]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, newTestRouter(tt.sessions, logger.Nop()), http.MethodGet, "/api/sessions", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	router := newTestRouter(stubSessions(nil), logger.Nop())

	assert.Equal(t, http.StatusNotFound, serve(t, router, http.MethodPost, "/healthz", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(t, router, http.MethodGet, "/api/unknown", nil).Code)
}

func TestTraceID(t *testing.T) {
	router := newTestRouter(stubSessions(nil), logger.Nop())

	rec := serve(t, router, http.MethodGet, "/healthz", http.Header{traceIDHeader: {"trace-1"}})
	assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))

	rec = serve(t, router, http.MethodGet, "/healthz", nil)
	_, err := uuid.Parse(rec.Header().Get(traceIDHeader))
	assert.NoError(t, err)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	serve(t, newTestRouter(stubSessions(nil), log), http.MethodGet, "/api/sessions", http.Header{traceIDHeader: {"trace-2"}})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lastLine(buf.Bytes()), &entry))
	assert.Equal(t, "trace-2", entry["trace_id"])
	assert.Equal(t, "/api/sessions", entry["uri"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func lastLine(b []byte) []byte {
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	return lines[len(lines)-1]
}
