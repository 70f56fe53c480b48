// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	ErrUnknownDriver    = errors.New("unknown session driver")
	ErrInvalidAccount   = errors.New("account has no username or credentials")
	ErrRegistryShutdown = errors.New("session registry is shut down")
)
