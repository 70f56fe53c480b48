// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrSessionExpired    = errors.New("session expired")
	ErrMissingDependency = errors.New("missing service dependency")

	errKeepCatalog = errors.New("owned catalog already populated")
)
