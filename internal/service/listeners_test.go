// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// subscribed logs the account in without marking it logged on and wires the
// services to the bus.
func (f *fixture) subscribed(t *testing.T, account models.Account) *session.Session {
	t.Helper()

	f.services(t).Subscribe(f.bus)
	require.NoError(t, f.registry.Login(testContext(t), account))
	sess := f.registry.Current(account.Username)
	require.NotNil(t, sess)
	return sess
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for value")
	}
	var zero T
	return zero
}

func TestLoggedOn_StartsIdling(t *testing.T) {
	f := newFixture(t, models.FleetConfig{})
	sess := f.subscribed(t, alice())

	active := make(chan []uint32, 1)
	f.client.EXPECT().FetchOwnedEntries(gomock.Any(), gomock.Any()).Return(entries(1, 2), nil)
	f.client.EXPECT().SetActiveEntries(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ids []uint32) error {
			active <- ids
			return nil
		})

	f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventLoggedOn})
	assert.Equal(t, models.StatusLoggedIn, sess.Status())

	assert.ElementsMatch(t, []uint32{1, 2}, receive(t, active))
}

func TestLoggedOn_RepeatedEventStartsLoopsOnce(t *testing.T) {
	f := newFixture(t, models.FleetConfig{})
	sess := f.subscribed(t, alice())

	var fetches, rotations atomic.Int32
	f.client.EXPECT().FetchOwnedEntries(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, session.OwnedEntriesOptions) ([]models.Entry, error) {
			fetches.Add(1)
			return entries(1, 2), nil
		}).AnyTimes()
	f.client.EXPECT().SetActiveEntries(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []uint32) error {
			rotations.Add(1)
			return nil
		}).AnyTimes()

	f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventLoggedOn})
	f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventLoggedOn})

	require.Eventually(t, func() bool { return rotations.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return fetches.Load() > 1 || rotations.Load() > 1 }, 200*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, models.StatusLoggedIn, sess.Status())
}

func TestLoggedOn_RunsClaimLoopWhenEnabled(t *testing.T) {
	f := newFixture(t, models.FleetConfig{FetchFreeEntries: true})
	sess := f.subscribed(t, alice())

	pages := make(chan int, 1)
	f.client.EXPECT().FetchOwnedEntries(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.catalog.EXPECT().SearchFreeCatalog(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, page int) (string, error) {
			pages <- page
			return "", nil
		})

	f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventLoggedOn})

	f.advanceWhenBlocked(t, time.Minute)
	assert.Equal(t, 1, receive(t, pages))
}

func TestRefreshToken_PersistsEverywhere(t *testing.T) {
	account := alice()
	f := newFixture(t, models.FleetConfig{Accounts: []models.Account{account}})
	sess := f.subscribed(t, account)

	f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventRefreshToken, Token: "fresh"})

	assert.Equal(t, "fresh", sess.Account().RefreshToken)
	assert.Equal(t, "fresh", sess.Document().RefreshToken)
	stored, ok := f.config.Snapshot().Account("alice")
	require.True(t, ok)
	assert.Equal(t, "fresh", stored.RefreshToken)
}

func TestBanInfo(t *testing.T) {
	tests := []struct {
		name string
		skip bool
		want []uint32
	}{
		{name: "recorded when skipping banned entries", skip: true, want: []uint32{4, 5}},
		{name: "ignored otherwise", skip: false, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, models.FleetConfig{SkipBannedEntries: tt.skip})
			sess := f.subscribed(t, alice())

			f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventBanInfo, BanCount: 2, BanIDs: []uint32{4, 5}})

			assert.Equal(t, tt.want, sess.Document().BannedIDs)
		})
	}
}

func TestChallenge_AnsweredOncePerLogin(t *testing.T) {
	f := newFixture(t, models.FleetConfig{})
	sess := f.subscribed(t, alice())

	codes := make(chan string, 2)
	f.solver.EXPECT().Solve(gomock.Any(), gomock.Any(), "mail.example", false).Return("ABCDE", nil).Times(1)

	ev := session.Event{Kind: session.EventChallenge, Challenge: &session.ChallengeRequest{
		Domain:  "mail.example",
		Respond: func(code string) { codes <- code },
	}}
	f.bus.Publish(sess.Context(), sess, ev)
	f.bus.Publish(sess.Context(), sess, ev)

	assert.Equal(t, "ABCDE", receive(t, codes))
	assert.Never(t, func() bool { return len(codes) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestChallenge_RetriesRejectedCode(t *testing.T) {
	f := newFixture(t, models.FleetConfig{})
	sess := f.subscribed(t, alice())
	sess.StopRenewal()

	codes := make(chan string, 1)
	f.solver.EXPECT().Solve(gomock.Any(), gomock.Any(), "", true).Return("FGHJK", nil)

	f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventChallenge, Challenge: &session.ChallengeRequest{
		LastCodeWrong: true,
		Respond:       func(code string) { codes <- code },
	}})

	f.advanceWhenBlocked(t, time.Millisecond)
	assert.Equal(t, "FGHJK", receive(t, codes))
}

func TestDisconnected_OnlyLogs(t *testing.T) {
	f := newFixture(t, models.FleetConfig{})
	sess := f.subscribed(t, alice())

	f.bus.Publish(sess.Context(), sess, session.Event{Kind: session.EventDisconnected, Code: 3, Message: "bye"})

	assert.Equal(t, models.StatusLoggingIn, sess.Status())
	assert.Len(t, f.authCalls(), 1)
}
