// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/session"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

const (
	// ClaimBatchSize is the number of entries claimed by one batch call.
	ClaimBatchSize = 50

	// StallLimit is the number of stalled empty pages after which the
	// listing is walked again from the first page.
	StallLimit = 5

	catalogAttemptTimeout = 60 * time.Second
)

var (
	preReleasePattern = regexp.MustCompile(`(?i)(\sPTS|PTS\s|\sBeta|Beta\s|\sTest|Test\s|\sUnstable|Unstable\s)`)
	listingIDPattern  = regexp.MustCompile(`data-ds-appid="([^"]*)"`)
)

var ownedEntriesOptions = session.OwnedEntriesOptions{
	IncludeAppInfo:         true,
	IncludeFreeSub:         true,
	SkipUnvettedApps:       false,
	IncludePlayedFreeGames: true,
}

type acquisitionService struct {
	registry *session.Registry
	config   ConfigStore
	catalog  adapter.CatalogClient
	retry    utils.RetryPolicy
}

func NewAcquisitionService(registry *session.Registry, config ConfigStore, catalog adapter.CatalogClient, retry utils.RetryPolicy) AcquisitionService {
	return &acquisitionService{
		registry: registry,
		config:   config,
		catalog:  catalog,
		retry:    retry,
	}
}

func (s *acquisitionService) BuildCatalog(ctx context.Context, sess *session.Session) error {
	err := utils.Retry(ctx, s.retry, func(ctx context.Context, attempt int) error {
		if s.registry.IsExpired(sess) {
			return utils.Stop(ErrSessionExpired)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, catalogAttemptTimeout)
		defer cancel()

		owned, err := sess.Client.FetchOwnedEntries(attemptCtx, ownedEntriesOptions)
		if err != nil {
			if len(sess.Document().OwnedEntries) > 0 {
				return utils.Stop(errKeepCatalog)
			}
			if !isTimeout(err) {
				sess.Log.Error().Err(err).Int("attempt", attempt+1).Msg("owned catalog request failed")
			}
			return err
		}

		s.mergeCatalog(ctx, sess, owned)
		return nil
	})
	if errors.Is(err, errKeepCatalog) {
		return nil
	}
	return err
}

func (s *acquisitionService) mergeCatalog(ctx context.Context, sess *session.Session, owned []models.Entry) {
	cfg := s.config.Snapshot()
	account := sess.Account()

	include := slices.Concat(cfg.WhitelistIDs, account.WhitelistIDs)
	var added int
	err := sess.Update(ctx, func(doc *models.SessionDocument) {
		exclude := models.NewIDSet(cfg.BlacklistIDs, account.BlacklistIDs, doc.BannedIDs)
		before := len(doc.OwnedEntries)
		doc.OwnedEntries = appendCatalog(doc.OwnedEntries, owned, include, exclude)
		added = len(doc.OwnedEntries) - before
	}, false)
	if err != nil {
		sess.Log.Warn().Err(err).Msg("owned catalog not persisted yet")
	}

	sess.Log.Debug().Int("added", added).Msg("owned catalog merged")
}

// appendCatalog appends to current every owned or included entry that is
// not excluded, not already in current and not a pre-release build. Owned
// entries come first; included ids missing from them get an unknown name.
func appendCatalog(current, owned []models.Entry, include []uint32, exclude models.IDSet) []models.Entry {
	skip := models.NewIDSet(models.EntryIDs(current))
	for id := range exclude {
		skip.Add(id)
	}

	candidates := slices.Clone(owned)
	for _, id := range include {
		candidates = append(candidates, models.Entry{ID: id, Name: models.UnknownEntryName})
	}

	seen := make(models.IDSet, len(candidates))
	for _, entry := range candidates {
		if seen.Has(entry.ID) {
			continue
		}
		seen.Add(entry.ID)

		if skip.Has(entry.ID) || isPreRelease(entry.Name) {
			continue
		}
		current = append(current, entry)
	}
	return current
}

func isPreRelease(name string) bool {
	return preReleasePattern.MatchString(name)
}

func (s *acquisitionService) Tick(ctx context.Context, sess *session.Session) bool {
	if s.registry.IsExpired(sess) {
		return false
	}

	if err := s.discover(ctx, sess); err != nil && !errors.Is(err, ErrSessionExpired) && ctx.Err() == nil {
		sess.Log.Error().Err(err).Msg("free catalog page skipped")
	}
	s.ClaimBatch(ctx, sess)

	return true
}

// discover walks one page of the free listing and records new claimable
// entries.
func (s *acquisitionService) discover(ctx context.Context, sess *session.Session) error {
	doc := sess.Document()
	state := doc.Acquisition

	var body string
	err := utils.Retry(ctx, s.retry, func(ctx context.Context, attempt int) error {
		if s.registry.IsExpired(sess) {
			return utils.Stop(ErrSessionExpired)
		}

		var err error
		body, err = s.catalog.SearchFreeCatalog(ctx, state.Page())
		if err != nil {
			sess.Log.Warn().Err(err).Int("page", state.Page()).Int("attempt", attempt+1).Msg("free catalog request failed")
		}
		return err
	})
	if err != nil {
		return err
	}

	cfg := s.config.Snapshot()
	account := sess.Account()
	exclude := models.NewIDSet(cfg.BlacklistIDs, account.BlacklistIDs, doc.BannedIDs, models.EntryIDs(doc.OwnedEntries))

	if !s.walkPage(ctx, sess, &state, extractListingIDs(body), exclude) {
		return ctx.Err()
	}

	if err = sess.Update(ctx, func(d *models.SessionDocument) { d.Acquisition = state }, false); err != nil {
		sess.Log.Warn().Err(err).Msg("claim progress not persisted yet")
	}
	return nil
}

// walkPage applies one listing page to state. It returns false when ctx was
// cancelled before the page was fully processed; state is then incomplete.
func (s *acquisitionService) walkPage(ctx context.Context, sess *session.Session, state *models.AcquisitionState, ids []uint32, exclude models.IDSet) bool {
	if len(ids) == 0 {
		recordEmptyPage(state)
		if state.StallCount >= StallLimit {
			sess.Log.Info().Int("stalls", state.StallCount).Msg("free catalog exhausted, restarting from the first page")
		}
		return true
	}

	seen := models.NewIDSet(state.Claimed, models.EntryIDs(state.Pending))
	for _, id := range ids {
		if exclude.Has(id) || seen.Has(id) {
			continue
		}

		details, err := s.catalog.FetchEntryDetails(ctx, id)
		if ctx.Err() != nil {
			return false
		}

		seen.Add(id)
		if err != nil {
			sess.Log.Debug().Err(err).Uint32("entry", id).Msg("entry details unavailable, excluding")
			state.Claimed = append(state.Claimed, id)
			continue
		}
		if !details.Claimable() {
			continue
		}
		state.Claimed = append(state.Claimed, id)

		canonical := details.CanonicalID
		if canonical == 0 {
			canonical = id
		}
		if canonical != id && (exclude.Has(canonical) || seen.Has(canonical)) {
			continue
		}
		seen.Add(canonical)
		state.Pending = append(state.Pending, models.Entry{ID: canonical, Name: details.Name})
	}

	state.Cursor = state.Page() + 1
	return true
}

// recordEmptyPage counts a stall when the pending size did not change since
// the previous empty page, and restarts the walk after StallLimit stalls.
func recordEmptyPage(state *models.AcquisitionState) {
	size := len(state.Pending)
	if size == state.LastPendingSize {
		state.StallCount++
	}
	state.LastPendingSize = size

	if state.StallCount >= StallLimit {
		state.Cursor = 0
		state.Claimed = nil
		state.Force = true
	}
}

// extractListingIDs returns the distinct entry ids of a listing page in page
// order. A multi-id attribute yields its first id.
func extractListingIDs(body string) []uint32 {
	matches := listingIDPattern.FindAllStringSubmatch(body, -1)

	ids := make([]uint32, 0, len(matches))
	seen := make(models.IDSet, len(matches))
	for _, m := range matches {
		id, ok := leadingID(m[1])
		if !ok || seen.Has(id) {
			continue
		}
		seen.Add(id)
		ids = append(ids, id)
	}
	return ids
}

func leadingID(raw string) (uint32, bool) {
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	id, err := strconv.ParseUint(raw[:end], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint32(id), true
}

func (s *acquisitionService) ClaimBatch(ctx context.Context, sess *session.Session) {
	state := sess.Document().Acquisition
	if len(state.Pending) < ClaimBatchSize && !state.Force {
		return
	}

	if len(state.Pending) == 0 {
		s.persistClaim(ctx, sess, nil)
		return
	}

	batch := state.Pending[:min(ClaimBatchSize, len(state.Pending))]
	ids := models.EntryIDs(batch)

	err := utils.Retry(ctx, s.retry, func(ctx context.Context, attempt int) error {
		if s.registry.IsExpired(sess) {
			return utils.Stop(ErrSessionExpired)
		}

		err := sess.Client.RequestBatchClaim(ctx, ids)
		if err != nil && !isTimeout(err) {
			sess.Log.Error().Err(err).Int("attempt", attempt+1).Msg("batch claim failed")
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrSessionExpired) {
			sess.Log.Error().Err(err).Int("batch", len(ids)).Msg("batch claim given up until next tick")
		}
		return
	}

	sess.Log.Info().
		Int("claimed", len(ids)).
		Int("pending", len(state.Pending)-len(ids)).
		Int("page", state.Page()).
		Msg("free entries claimed")
	s.persistClaim(ctx, sess, ids)
}

// persistClaim removes claimed ids from pending and clears the stall and
// force markers.
func (s *acquisitionService) persistClaim(ctx context.Context, sess *session.Session, claimed []uint32) {
	done := models.NewIDSet(claimed)
	err := sess.Update(ctx, func(d *models.SessionDocument) {
		d.Acquisition.Pending = slices.DeleteFunc(d.Acquisition.Pending, func(e models.Entry) bool {
			return done.Has(e.ID)
		})
		d.Acquisition.StallCount = 0
		if d.Acquisition.Force {
			d.Acquisition.Force = false
			d.Acquisition.LastPendingSize = 0
		}
	}, false)
	if err != nil {
		sess.Log.Warn().Err(err).Msg("claim progress not persisted yet")
	}
}

func isTimeout(err error) bool {
	return errors.Is(err, models.ErrTransportTimeout) || errors.Is(err, context.DeadlineExceeded)
}
