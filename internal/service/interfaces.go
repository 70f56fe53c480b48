// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// ConfigStore is the shared fleet configuration document.
type ConfigStore interface {
	Snapshot() models.FleetConfig
	Write(ctx context.Context, mutate func(*models.FleetConfig), force bool) error
}

// AcquisitionService maintains the owned catalog of a session and claims
// free entries in batches.
type AcquisitionService interface {
	// BuildCatalog adds the owned and whitelisted entries of the account to
	// the session catalog.
	BuildCatalog(ctx context.Context, sess *session.Session) error

	// Tick runs one claim-loop iteration. It returns false once the session
	// expired.
	Tick(ctx context.Context, sess *session.Session) bool

	// ClaimBatch claims the head of the pending list when it is large enough
	// or a claim is forced.
	ClaimBatch(ctx context.Context, sess *session.Session)
}

// IdleService rotates the entries a session is running.
type IdleService interface {
	// Start resets the idle window and schedules the next catalog refresh.
	Start(ctx context.Context, sess *session.Session)

	// Tick runs one idle-loop iteration. It returns false once the session
	// expired.
	Tick(ctx context.Context, sess *session.Session) bool
}

// ErrorPolicy reacts to session faults.
type ErrorPolicy interface {
	Handle(ctx context.Context, sess *session.Session, ev session.Event)
}

// AppInfoService reports process metadata.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
