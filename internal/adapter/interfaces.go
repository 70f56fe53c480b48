// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound HTTP integrations of the fleet: the
// hosted object repository holding the shared config, the store catalog and
// entry details, public profile presence and plain network reachability.
//
// Transport failures and non-2xx statuses are mapped to the fault taxonomy
// in models (e.g. [models.ErrRateLimited] for 429) so callers can use
// [errors.Is] regardless of which adapter raised them.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ObjectRef addresses a single document in a hosted repository.
type ObjectRef struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// Key is the version cache key of the document.
func (r ObjectRef) Key() string {
	return r.Branch + "/" + r.Path
}

// ObjectContent is a fetched document.
type ObjectContent struct {
	// Content is base64 encoded, possibly wrapped with newlines.
	Content string
	// VersionTag is the content hash used as an optimistic-concurrency
	// precondition on the next update.
	VersionTag string
}

// ObjectAPI is the hosted repository contents API.
type ObjectAPI interface {
	// GetContent fetches the document at ref.
	GetContent(ctx context.Context, ref ObjectRef) (ObjectContent, error)

	// CreateOrUpdate writes base64 content at ref. versionTag must be the
	// current tag of the document, or empty when creating it. Returns the new
	// version tag.
	CreateOrUpdate(ctx context.Context, ref ObjectRef, content, versionTag, message string) (string, error)
}

// CatalogClient looks up the public store catalog.
type CatalogClient interface {
	// SearchFreeCatalog returns the raw listing of one page of free entries,
	// newest first.
	SearchFreeCatalog(ctx context.Context, page int) (string, error)

	// FetchEntryDetails returns the details of a single entry.
	FetchEntryDetails(ctx context.Context, id uint32) (models.EntryDetails, error)
}

// PresenceClient reads the coarse presence of a public profile.
type PresenceClient interface {
	ProfilePresence(ctx context.Context, profile string) (models.Presence, error)
}

// ConnectivityProbe reports whether the network is reachable.
type ConnectivityProbe interface {
	Reachable(ctx context.Context) bool
}
