// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates the shared document repository is not
	// fully addressed (owner, repo, path and token are required).
	ErrInvalidRemoteConfigs = errors.New("invalid remote repository configuration")
	// ErrInvalidStorageConfigs indicates an unknown storage driver or a
	// missing directory/DSN for the selected one.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates a missing session driver or an unknown
	// log format.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive cadence or delay.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
