// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package challenge

import "errors"

var (
	ErrInvalidSecret = errors.New("invalid shared secret")
	ErrNoPrompt      = errors.New("account has no shared secret and prompting is disabled")
)
