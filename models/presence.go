// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Presence is the coarse public presence of an account profile.
type Presence int

const (
	PresenceUnknown Presence = iota
	PresenceOffline
	PresenceOnline
)

func (p Presence) String() string {
	switch p {
	case PresenceOffline:
		return "offline"
	case PresenceOnline:
		return "online"
	default:
		return "unknown"
	}
}
