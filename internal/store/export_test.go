// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// SetTag seeds the version cache from external tests.
var SetTag = (*VersionCache).setTag
