// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session owns the lifecycle of live account sessions.
//
// A [Registry] keeps at most one [Session] per account. Every login retires
// the previous session of the account, issues a fresh generation id and arms
// a renewal timer that re-enters login unless the underlying
// [RemoteSessionClient] reports anything first. Client events are forwarded
// in order to the subscribers of a [Bus]; listeners compare the session they
// receive against the registry with [Registry.IsExpired] before acting.
//
//go:generate mockgen -source=client.go -destination=../mock/session_mock.go -package=mock
package session

import (
	"context"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// Credentials is the authenticate payload. Exactly one of RefreshToken or
// Password is set.
type Credentials struct {
	AccountName  string
	Password     string
	RefreshToken string
}

// UsesToken reports whether the credentials authenticate with a token.
func (c Credentials) UsesToken() bool {
	return c.RefreshToken != ""
}

// OwnedEntriesOptions narrows the owned-entries query.
type OwnedEntriesOptions struct {
	IncludeAppInfo         bool
	IncludeFreeSub         bool
	SkipUnvettedApps       bool
	IncludePlayedFreeGames bool
}

// RemoteSessionClient is the authenticated connection of one account.
type RemoteSessionClient interface {
	// Authenticate starts a login. Its outcome arrives through Events.
	Authenticate(ctx context.Context, creds Credentials) error

	// Disconnect closes the connection. It must be safe to call repeatedly.
	Disconnect()

	// SetActiveEntries replaces the set of entries the account is running.
	SetActiveEntries(ctx context.Context, ids []uint32) error

	// FetchOwnedEntries lists every entry the account owns.
	FetchOwnedEntries(ctx context.Context, opts OwnedEntriesOptions) ([]models.Entry, error)

	// RequestBatchClaim claims all ids in a single call.
	RequestBatchClaim(ctx context.Context, ids []uint32) error

	// Events streams client events in the order they were raised. The
	// session stops reading it when retired; closing it is optional.
	Events() <-chan Event

	// ProfileName returns the public profile identifier of the account, or
	// an empty string when it is not known yet.
	ProfileName() string
}

// EventKind identifies a client event.
type EventKind int

const (
	EventLoggedOn EventKind = iota + 1
	EventDisconnected
	EventError
	EventRefreshToken
	EventBanInfo
	EventChallenge
)

func (k EventKind) String() string {
	switch k {
	case EventLoggedOn:
		return "logged_on"
	case EventDisconnected:
		return "disconnected"
	case EventError:
		return "error"
	case EventRefreshToken:
		return "refresh_token"
	case EventBanInfo:
		return "ban_info"
	case EventChallenge:
		return "challenge"
	default:
		return "unknown"
	}
}

// ChallengeRequest asks for a second-factor code.
type ChallengeRequest struct {
	// Domain is the email domain the code was sent to. Empty for
	// authenticator codes.
	Domain string

	// LastCodeWrong is set when the previous code was rejected.
	LastCodeWrong bool

	// Respond delivers the code to the client.
	Respond func(code string)
}

// Event is a single client notification. Only the fields relevant to Kind
// are set.
type Event struct {
	Kind EventKind

	// Code and Message describe a disconnect.
	Code    int
	Message string

	// Err is the fault classification of an error event. Match it against
	// the models sentinel errors with errors.Is.
	Err error

	// Token is the newly issued refresh token.
	Token string

	// BanCount and BanIDs describe ban info.
	BanCount int
	BanIDs   []uint32

	Challenge *ChallengeRequest
}
