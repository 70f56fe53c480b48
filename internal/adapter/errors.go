// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrNotFound is returned for 404 responses, e.g. a repository document
	// that does not exist yet.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest is returned for 400 responses.
	ErrBadRequest = errors.New("bad request")

	// ErrUnexpectedResponse is returned when a 2xx body cannot be decoded or
	// lacks required fields.
	ErrUnexpectedResponse = errors.New("unexpected response")
)
