// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SessionStatus is the lifecycle state of a live session.
type SessionStatus int

const (
	StatusLoggedOut SessionStatus = iota
	StatusLoggingIn
	StatusLoggedIn
)

func (s SessionStatus) String() string {
	switch s {
	case StatusLoggingIn:
		return "logging_in"
	case StatusLoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// SessionDocument is the per-account document persisted locally. It holds
// everything a session needs to resume after a restart.
type SessionDocument struct {
	// RefreshToken is the last token issued by the remote side.
	RefreshToken string `json:"refreshToken,omitempty"`

	// OwnedEntries is the owned catalog in discovery order.
	OwnedEntries []Entry `json:"ownedEntries,omitempty"`

	// BannedIDs are entries reported by ban info.
	BannedIDs []uint32 `json:"bannedIds,omitempty"`

	// Acquisition is the resumable claim-loop progress.
	Acquisition AcquisitionState `json:"acquisition,omitempty"`

	// IdleUntil is the end of the current idle window.
	IdleUntil time.Time `json:"idleUntil,omitempty"`

	// RefreshAt is the next owned-catalog refresh deadline.
	RefreshAt time.Time `json:"refreshAt,omitempty"`
}

// AcquisitionState is the claim-loop progress of one account.
type AcquisitionState struct {
	// Cursor is the next free-catalog page. Zero means the first page.
	Cursor int `json:"cursor,omitempty"`

	// Pending are accepted entries not yet claimed, in discovery order.
	Pending []Entry `json:"pending,omitempty"`

	// Claimed are ids accepted, or whose details lookup failed, during the
	// current pass; used for deduplication and cleared when the pass
	// restarts.
	Claimed []uint32 `json:"claimed,omitempty"`

	// StallCount counts consecutive empty pages with an unchanged pending
	// size.
	StallCount int `json:"stallCount,omitempty"`

	// LastPendingSize is the pending size observed on the previous empty page.
	LastPendingSize int `json:"lastPendingSize,omitempty"`

	// Force requests a claim batch regardless of the batch size.
	Force bool `json:"force,omitempty"`
}

// Page returns the effective cursor, starting at 1.
func (a AcquisitionState) Page() int {
	if a.Cursor < 1 {
		return 1
	}
	return a.Cursor
}

// SessionInfo is the public view of a live session.
type SessionInfo struct {
	Username     string    `json:"username"`
	GenerationID string    `json:"generationId"`
	Status       string    `json:"status"`
	StartedAt    time.Time `json:"startedAt"`
}
