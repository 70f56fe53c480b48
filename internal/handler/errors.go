// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no listen address
// is configured.
var errNoHandlersAreCreated = errors.New("no handlers are created")

// IsDisabled reports whether err means the status endpoint was turned off
// by configuration.
func IsDisabled(err error) bool {
	return errors.Is(err, errNoHandlersAreCreated)
}
