// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

func responseWithStatus(t *testing.T, status int) *resty.Response {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	resp, err := resty.New().R().Get(srv.URL)
	require.NoError(t, err)
	return resp
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, models.ErrAuthRejected},
		{http.StatusForbidden, models.ErrAuthRejected},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, models.ErrRemoteWriteConflict},
		{http.StatusUnprocessableEntity, models.ErrRemoteWriteConflict},
		{http.StatusTooManyRequests, models.ErrRateLimited},
		{http.StatusGatewayTimeout, models.ErrTransportTimeout},
		{http.StatusServiceUnavailable, models.ErrTransportUnavailable},
		{http.StatusBadGateway, models.ErrTransportUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := mapHTTPError(responseWithStatus(t, tt.status))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMapHTTPError_Success(t *testing.T) {
	assert.NoError(t, mapHTTPError(responseWithStatus(t, http.StatusOK)))
	assert.NoError(t, mapHTTPError(responseWithStatus(t, http.StatusCreated)))
}

func TestMapHTTPError_Unknown(t *testing.T) {
	err := mapHTTPError(responseWithStatus(t, http.StatusTeapot))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestMapTransportError(t *testing.T) {
	assert.NoError(t, mapTransportError(nil))
	assert.ErrorIs(t, mapTransportError(context.DeadlineExceeded), models.ErrTransportTimeout)
	assert.ErrorIs(t, mapTransportError(errors.New("connection refused")), models.ErrTransportUnavailable)

	err := mapTransportError(context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, models.ErrTransportUnavailable)
}
