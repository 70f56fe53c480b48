// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dryrun registers the "dryrun" session driver: an offline client
// that accepts any credentials, issues its own refresh tokens and logs the
// remote calls it would have made. It lets the fleet run end to end without
// a network session library.
//
// Import it for its side effect:
//
//	import _ "github.com/MKhiriev/go-fleet-keeper/internal/session/dryrun"
package dryrun

import (
	"context"
	"crypto/rand"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

const (
	// DriverName is the name the driver is registered under.
	DriverName = "dryrun"

	// TokenLifetime is the validity of issued refresh tokens.
	TokenLifetime = 200 * 24 * time.Hour

	eventBuffer = 8
)

func init() {
	session.RegisterDriver(DriverName, NewDriver(logger.NewLogger("dryrun"), clockwork.NewRealClock()))
}

// Driver builds dryrun clients. Every client of one driver shares the
// signing key of the tokens it issues.
type Driver struct {
	log   *logger.Logger
	clock clockwork.Clock
	key   []byte
}

func NewDriver(log *logger.Logger, clock clockwork.Clock) *Driver {
	key := make([]byte, 32)
	_, _ = rand.Read(key)

	return &Driver{log: log, clock: clock, key: key}
}

func (d *Driver) NewClient(account models.Account) (session.RemoteSessionClient, error) {
	return &client{
		account: account.Clone(),
		log:     d.log.ForAccount(account.Username),
		clock:   d.clock,
		key:     d.key,
		events:  make(chan session.Event, eventBuffer),
		done:    make(chan struct{}),
	}, nil
}

type client struct {
	account models.Account
	log     *logger.Logger
	clock   clockwork.Clock
	key     []byte

	// events is never closed; the pump stops with the session context.
	events chan session.Event
	done   chan struct{}
	once   sync.Once

	mu    sync.Mutex
	owned []models.Entry
}

func (c *client) Authenticate(ctx context.Context, creds session.Credentials) error {
	if c.disconnected() {
		return models.ErrTransportUnavailable
	}

	if creds.UsesToken() {
		if !c.verify(creds.RefreshToken) {
			c.log.Info().Msg("dryrun: refresh token rejected")
			c.emit(ctx, session.Event{Kind: session.EventError, Err: models.ErrAuthRejected})
			return nil
		}
		c.log.Info().Msg("dryrun: logged on with refresh token")
		c.emit(ctx, session.Event{Kind: session.EventLoggedOn})
		return nil
	}

	if creds.AccountName == "" || creds.Password == "" {
		c.emit(ctx, session.Event{Kind: session.EventError, Err: models.ErrAuthRejected})
		return nil
	}

	token, err := c.issue(creds.AccountName)
	if err != nil {
		return fmt.Errorf("error issuing refresh token: %w", err)
	}

	c.log.Info().Msg("dryrun: logged on with password")
	c.emit(ctx, session.Event{Kind: session.EventLoggedOn})
	c.emit(ctx, session.Event{Kind: session.EventRefreshToken, Token: token})
	return nil
}

func (c *client) Disconnect() {
	c.once.Do(func() {
		close(c.done)
		c.log.Info().Msg("dryrun: disconnected")
	})
}

func (c *client) SetActiveEntries(_ context.Context, ids []uint32) error {
	if c.disconnected() {
		return models.ErrTransportUnavailable
	}
	c.log.Debug().Uints32("entries", ids).Msg("dryrun: active entries set")
	return nil
}

// FetchOwnedEntries returns the whitelisted entries plus everything claimed
// through this client.
func (c *client) FetchOwnedEntries(context.Context, session.OwnedEntriesOptions) ([]models.Entry, error) {
	if c.disconnected() {
		return nil, models.ErrTransportUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	owned := make([]models.Entry, 0, len(c.account.WhitelistIDs)+len(c.owned))
	for _, id := range c.account.WhitelistIDs {
		owned = append(owned, models.Entry{ID: id, Name: fmt.Sprintf("dryrun entry %d", id)})
	}
	return append(owned, c.owned...), nil
}

func (c *client) RequestBatchClaim(_ context.Context, ids []uint32) error {
	if c.disconnected() {
		return models.ErrTransportUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if !slices.ContainsFunc(c.owned, func(e models.Entry) bool { return e.ID == id }) {
			c.owned = append(c.owned, models.Entry{ID: id, Name: fmt.Sprintf("dryrun entry %d", id)})
		}
	}

	c.log.Info().Int("count", len(ids)).Msg("dryrun: batch claimed")
	return nil
}

func (c *client) Events() <-chan session.Event {
	return c.events
}

func (c *client) ProfileName() string {
	return c.account.Username
}

func (c *client) emit(ctx context.Context, ev session.Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	case <-ctx.Done():
	}
}

func (c *client) disconnected() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *client) issue(subject string) (string, error) {
	now := c.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    DriverName,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// verify accepts tokens signed by this driver that have not expired at the
// client clock.
func (c *client) verify(token string) bool {
	if !utils.TokenUsable(token, c.clock.Now()) {
		return false
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
	)
	return err == nil && parsed.Valid
}
