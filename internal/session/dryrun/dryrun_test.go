// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dryrun

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, clock clockwork.Clock, account models.Account) session.RemoteSessionClient {
	t.Helper()
	c, err := NewDriver(logger.Nop(), clock).NewClient(account)
	require.NoError(t, err)
	return c
}

func next(t *testing.T, c session.RemoteSessionClient) session.Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(time.Second):
		require.FailNow(t, "no event")
	}
	return session.Event{}
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, session.Drivers(), DriverName)
}

func TestAuthenticate_PasswordIssuesToken(t *testing.T) {
	driver := NewDriver(logger.Nop(), clockwork.NewFakeClockAt(testNow))
	c, err := driver.NewClient(models.Account{Username: "alice"})
	require.NoError(t, err)

	err = c.Authenticate(context.Background(), session.Credentials{AccountName: "alice", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, session.EventLoggedOn, next(t, c).Kind)
	ev := next(t, c)
	require.Equal(t, session.EventRefreshToken, ev.Kind)

	exp, err := utils.TokenExpiry(ev.Token)
	require.NoError(t, err)
	assert.True(t, exp.Equal(testNow.Add(TokenLifetime)))

	// the issued token logs the next client of the driver on
	again, err := driver.NewClient(models.Account{Username: "alice"})
	require.NoError(t, err)
	require.NoError(t, again.Authenticate(context.Background(), session.Credentials{AccountName: "alice", RefreshToken: ev.Token}))
	assert.Equal(t, session.EventLoggedOn, next(t, again).Kind)
}

func TestAuthenticate_RejectsForeignToken(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)
	c := newTestClient(t, clock, models.Account{Username: "alice"})

	require.NoError(t, c.Authenticate(context.Background(), session.Credentials{AccountName: "alice", RefreshToken: "opaque"}))

	ev := next(t, c)
	assert.Equal(t, session.EventError, ev.Kind)
	assert.ErrorIs(t, ev.Err, models.ErrAuthRejected)
}

func TestAuthenticate_MissingPassword(t *testing.T) {
	c := newTestClient(t, clockwork.NewFakeClockAt(testNow), models.Account{Username: "alice"})

	require.NoError(t, c.Authenticate(context.Background(), session.Credentials{AccountName: "alice"}))
	assert.ErrorIs(t, next(t, c).Err, models.ErrAuthRejected)
}

func TestClaimedEntriesBecomeOwned(t *testing.T) {
	c := newTestClient(t, clockwork.NewFakeClockAt(testNow), models.Account{Username: "alice", WhitelistIDs: []uint32{7}})
	ctx := context.Background()

	require.NoError(t, c.RequestBatchClaim(ctx, []uint32{8, 9, 8}))
	require.NoError(t, c.SetActiveEntries(ctx, []uint32{7, 8}))

	owned, err := c.FetchOwnedEntries(ctx, session.OwnedEntriesOptions{})
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 8, 9}, models.EntryIDs(owned))
	assert.Equal(t, "alice", c.ProfileName())
}

func TestDisconnect(t *testing.T) {
	c := newTestClient(t, clockwork.NewFakeClockAt(testNow), models.Account{Username: "alice"})
	ctx := context.Background()

	c.Disconnect()
	c.Disconnect()

	assert.ErrorIs(t, c.Authenticate(ctx, session.Credentials{AccountName: "alice", Password: "pw"}), models.ErrTransportUnavailable)
	assert.ErrorIs(t, c.RequestBatchClaim(ctx, []uint32{1}), models.ErrTransportUnavailable)
	_, err := c.FetchOwnedEntries(ctx, session.OwnedEntriesOptions{})
	assert.ErrorIs(t, err, models.ErrTransportUnavailable)
}
