// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the status endpoint of the fleet.
//
// The server is optional: it is only created when an HTTP address is
// configured, and its lifecycle follows the application's root context.
package server
