// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

func TestAppInfoService_UsesBuildVersion(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)
	build := models.NewAppBuildInfo("v1.2.3", "2026-01-01", "abc123")

	svc := NewAppInfoService(build, config.App{SessionDriver: "dryrun"}, clock)
	clock.Advance(90 * time.Second)

	info := svc.GetAppInfo(context.Background())
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "2026-01-01", info.BuildDate)
	assert.Equal(t, "abc123", info.BuildCommit)
	assert.Equal(t, "dryrun", info.SessionDriver)
	assert.Equal(t, testNow, info.StartedAt)
	assert.Equal(t, "1m30s", info.Uptime)
}

func TestAppInfoService_ConfiguredVersionWins(t *testing.T) {
	build := models.NewAppBuildInfo("", "", "")

	svc := NewAppInfoService(build, config.App{Version: "v9.9.9"}, clockwork.NewFakeClockAt(testNow))

	info := svc.GetAppInfo(context.Background())
	assert.Equal(t, "v9.9.9", info.Version)
	assert.Equal(t, "N/A", info.BuildCommit)
}

func TestAppInfoService_NotAvailableVersion(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("", "", ""), config.App{}, clockwork.NewFakeClockAt(testNow))

	assert.Equal(t, "N/A", svc.GetAppInfo(context.Background()).Version)
}
