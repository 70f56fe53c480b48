// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

type appInfoService struct {
	build     models.AppBuildInfo
	version   string
	driver    string
	clock     clockwork.Clock
	startedAt time.Time
}

// NewAppInfoService returns the service backing the version endpoint. A
// configured version overrides the one embedded at build time.
func NewAppInfoService(build models.AppBuildInfo, cfg config.App, clock clockwork.Clock) AppInfoService {
	version := cfg.Version
	if version == "" {
		version = build.BuildVersion()
	}

	return &appInfoService{
		build:     build,
		version:   version,
		driver:    cfg.SessionDriver,
		clock:     clock,
		startedAt: clock.Now(),
	}
}

func (s *appInfoService) GetAppInfo(_ context.Context) models.AppInfo {
	return models.AppInfo{
		Version:       s.version,
		BuildDate:     s.build.BuildDate(),
		BuildCommit:   s.build.BuildCommit(),
		SessionDriver: s.driver,
		StartedAt:     s.startedAt,
		Uptime:        s.clock.Since(s.startedAt).Round(time.Second).String(),
	}
}
