// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// Fault taxonomy shared by adapters, the session client and the error policy.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrTransportTimeout is returned when a remote call did not complete in
	// time.
	ErrTransportTimeout = errors.New("transport timeout")

	// ErrTransportUnavailable is returned when the network or the remote
	// service is down.
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrAuthRejected is returned when a credential or token was refused.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrSessionSuperseded is returned when the account logged in elsewhere.
	ErrSessionSuperseded = errors.New("session superseded")

	// ErrRateLimited is returned when the remote side throttles the account.
	ErrRateLimited = errors.New("rate limited")

	// ErrRemoteWriteConflict is returned when an optimistic write carried a
	// stale version tag.
	ErrRemoteWriteConflict = errors.New("remote write conflict")

	// ErrDataUnavailable is returned when a lookup produced no usable data.
	ErrDataUnavailable = errors.New("data unavailable")
)
