// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
	"time"
)

// DefaultRefreshInterval is used when the shared config does not define
// refreshInterval or defines a non-positive one.
const DefaultRefreshInterval = time.Hour

// Account holds the externally supplied credentials and per-account settings
// of a single fleet member. The core treats it as read-only except for the
// refresh token, which is replaced every time the remote side issues a new one.
type Account struct {
	// Username is the account login and the registry key of its session.
	Username string `json:"username"`

	// Password is the plaintext credential used when no refresh token is
	// available.
	Password string `json:"password,omitempty"`

	// Secret is the base64 shared secret used to derive challenge codes.
	// Empty means codes are solicited interactively.
	Secret string `json:"secret,omitempty"`

	// RefreshToken is a previously issued session token. When present it is
	// preferred over Password.
	RefreshToken string `json:"refreshToken,omitempty"`

	// WhitelistIDs are entries idled even if the account does not own them.
	WhitelistIDs []uint32 `json:"whitelistIds,omitempty"`

	// BlacklistIDs are entries never idled for this account.
	BlacklistIDs []uint32 `json:"blacklistIds,omitempty"`

	// FetchFreeEntries enables the claim loop for this account regardless of
	// the global flag.
	FetchFreeEntries bool `json:"fetchFreeEntries,omitempty"`
}

// Clone returns a deep copy of the account. Slices are copied so the clone
// can be mutated without affecting the shared configuration.
func (a Account) Clone() Account {
	a.WhitelistIDs = slices.Clone(a.WhitelistIDs)
	a.BlacklistIDs = slices.Clone(a.BlacklistIDs)
	return a
}

// Valid reports whether the account carries enough data to attempt a login.
func (a Account) Valid() bool {
	if strings.TrimSpace(a.Username) == "" {
		return false
	}
	return a.Password != "" || a.RefreshToken != ""
}

// FleetConfig is the shared configuration document kept in the remote object
// repository. It is read on startup and written back periodically so that
// refreshed tokens survive restarts.
type FleetConfig struct {
	// RefreshInterval is the owned-catalog refresh period and the cooldown
	// applied after a rate-limit fault.
	RefreshInterval Duration `json:"refreshInterval,omitempty"`

	// FetchFreeEntries enables the claim loop for every account.
	FetchFreeEntries bool `json:"fetchFreeEntries,omitempty"`

	// SkipBannedEntries excludes entries reported in ban info from idling.
	SkipBannedEntries bool `json:"skipBannedEntries,omitempty"`

	// WhitelistIDs are idled for every account.
	WhitelistIDs []uint32 `json:"whitelistIds,omitempty"`

	// BlacklistIDs are never idled nor claimed for any account.
	BlacklistIDs []uint32 `json:"blacklistIds,omitempty"`

	// Accounts is the fleet.
	Accounts []Account `json:"accounts,omitempty"`
}

// Refresh returns the effective refresh interval.
func (c FleetConfig) Refresh() time.Duration {
	if c.RefreshInterval <= 0 {
		return DefaultRefreshInterval
	}
	return time.Duration(c.RefreshInterval)
}

// Account looks up the account with the given username and returns a deep
// copy of it.
func (c FleetConfig) Account(username string) (Account, bool) {
	for _, a := range c.Accounts {
		if a.Username == username {
			return a.Clone(), true
		}
	}
	return Account{}, false
}

// Clone returns a deep copy of the config.
func (c FleetConfig) Clone() FleetConfig {
	c.WhitelistIDs = slices.Clone(c.WhitelistIDs)
	c.BlacklistIDs = slices.Clone(c.BlacklistIDs)

	accounts := make([]Account, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		accounts = append(accounts, a.Clone())
	}
	c.Accounts = accounts
	return c
}
