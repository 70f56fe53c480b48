// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"slices"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// mergeAccount builds the effective account of a new session. Precedence,
// lowest first: defaults, the supplied account config, the stored session
// document. A field is overridden only by a non-zero value.
func mergeAccount(defaults, cfg models.Account, doc models.SessionDocument) models.Account {
	out := defaults.Clone()

	if cfg.Username != "" {
		out.Username = cfg.Username
	}
	if cfg.Password != "" {
		out.Password = cfg.Password
	}
	if cfg.Secret != "" {
		out.Secret = cfg.Secret
	}
	if cfg.RefreshToken != "" {
		out.RefreshToken = cfg.RefreshToken
	}
	if len(cfg.WhitelistIDs) > 0 {
		out.WhitelistIDs = slices.Clone(cfg.WhitelistIDs)
	}
	if len(cfg.BlacklistIDs) > 0 {
		out.BlacklistIDs = slices.Clone(cfg.BlacklistIDs)
	}
	if cfg.FetchFreeEntries {
		out.FetchFreeEntries = true
	}

	if doc.RefreshToken != "" {
		out.RefreshToken = doc.RefreshToken
	}

	return out
}
