// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

var inGameHeader = regexp.MustCompile(`profile_in_game_header">([^<]*)`)

type communityPresenceClient struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewCommunityPresenceClient constructs a [PresenceClient] reading public
// profile pages from the community site at baseURL.
func NewCommunityPresenceClient(baseURL string, timeout time.Duration, log *logger.Logger) (PresenceClient, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid community address: %w", err)
	}

	client := utils.NewHTTPClient(timeout)
	client.SetBaseURL(base)

	return &communityPresenceClient{client: client, logger: log}, nil
}

// ProfilePresence implements [PresenceClient]. It GETs /id/{profile} and
// parses the in-game header of the page. A page without a recognisable
// header yields [models.PresenceUnknown] and [ErrUnexpectedResponse].
func (c *communityPresenceClient) ProfilePresence(ctx context.Context, profile string) (models.Presence, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("profile", profile).
		Get("/id/{profile}")
	if err != nil {
		return models.PresenceUnknown, fmt.Errorf("profile request: %w", mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PresenceUnknown, fmt.Errorf("profile %s: %w", profile, err)
	}

	return parsePresence(resp.String())
}

func parsePresence(page string) (models.Presence, error) {
	m := inGameHeader.FindStringSubmatch(page)
	if m == nil {
		return models.PresenceUnknown, fmt.Errorf("%w: no presence header", ErrUnexpectedResponse)
	}

	switch header := m[1]; {
	case strings.Contains(header, "Offline"):
		return models.PresenceOffline, nil
	case strings.Contains(header, "Online"):
		return models.PresenceOnline, nil
	default:
		return models.PresenceUnknown, nil
	}
}

type httpConnectivityProbe struct {
	client *utils.HTTPClient
	url    string
}

// NewHTTPConnectivityProbe constructs a [ConnectivityProbe] that considers
// the network reachable when probeURL answers with any HTTP status.
func NewHTTPConnectivityProbe(probeURL string, timeout time.Duration) ConnectivityProbe {
	return &httpConnectivityProbe{client: utils.NewHTTPClient(timeout), url: probeURL}
}

// Reachable implements [ConnectivityProbe].
func (p *httpConnectivityProbe) Reachable(ctx context.Context) bool {
	resp, err := p.client.R().SetContext(ctx).Head(p.url)
	if err != nil {
		return false
	}
	return resp.StatusCode() > 0 && resp.StatusCode() != http.StatusServiceUnavailable
}
