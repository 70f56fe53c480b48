// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

type storeCatalogClient struct {
	client  *utils.HTTPClient
	limiter *rate.Limiter
	logger  *logger.Logger
}

type appDetails struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type appData struct {
	Name        string `json:"name"`
	SteamAppID  uint32 `json:"steam_appid"`
	IsFree      bool   `json:"is_free"`
	ReleaseDate struct {
		ComingSoon bool `json:"coming_soon"`
	} `json:"release_date"`
}

// NewStoreCatalogClient constructs a [CatalogClient] for the store at
// baseURL. Detail lookups are spaced at least detailsInterval apart across
// every caller sharing the client.
func NewStoreCatalogClient(baseURL string, timeout, detailsInterval time.Duration, log *logger.Logger) (CatalogClient, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store address: %w", err)
	}

	client := utils.NewHTTPClient(timeout)
	client.SetBaseURL(base)

	limit := rate.Inf
	if detailsInterval > 0 {
		limit = rate.Every(detailsInterval)
	}

	return &storeCatalogClient{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  log,
	}, nil
}

// SearchFreeCatalog implements [CatalogClient]. It GETs one page of
// /search/results filtered to free Windows titles, newest first, and returns
// the raw HTML listing.
func (c *storeCatalogClient) SearchFreeCatalog(ctx context.Context, page int) (string, error) {
	if page < 1 {
		page = 1
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"sort_by":        "Released_DESC",
			"force_infinite": "1",
			"maxprice":       "free",
			"category1":      "998,10",
			"os":             "win",
			"page":           strconv.Itoa(page),
		}).
		Get("/search/results")
	if err != nil {
		return "", fmt.Errorf("search request: %w", mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("search page %d: %w", page, err)
	}

	return resp.String(), nil
}

// FetchEntryDetails implements [CatalogClient]. It GETs
// /api/appdetails?appids={id}. A response that is not a JSON object keyed by
// the id yields [models.ErrDataUnavailable].
func (c *storeCatalogClient) FetchEntryDetails(ctx context.Context, id uint32) (models.EntryDetails, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.EntryDetails{}, err
	}

	key := strconv.FormatUint(uint64(id), 10)
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("appids", key).
		Get("/api/appdetails")
	if err != nil {
		return models.EntryDetails{}, fmt.Errorf("details request: %w", mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EntryDetails{}, fmt.Errorf("details %d: %w", id, err)
	}

	return decodeEntryDetails(resp.Body(), id)
}

func decodeEntryDetails(body []byte, id uint32) (models.EntryDetails, error) {
	var all map[string]appDetails
	if err := json.Unmarshal(body, &all); err != nil {
		return models.EntryDetails{}, fmt.Errorf("details %d: %w: %w", id, models.ErrDataUnavailable, err)
	}

	entry, ok := all[strconv.FormatUint(uint64(id), 10)]
	if !ok {
		return models.EntryDetails{}, fmt.Errorf("details %d: %w: id missing", id, models.ErrDataUnavailable)
	}
	if !entry.Success {
		return models.EntryDetails{Success: false, CanonicalID: id}, nil
	}

	var data appData
	if err := json.Unmarshal(entry.Data, &data); err != nil {
		return models.EntryDetails{}, fmt.Errorf("details %d: %w: %w", id, models.ErrDataUnavailable, err)
	}

	canonical := data.SteamAppID
	if canonical == 0 {
		canonical = id
	}

	return models.EntryDetails{
		Success:     true,
		IsFree:      data.IsFree,
		ComingSoon:  data.ReleaseDate.ComingSoon,
		Name:        data.Name,
		CanonicalID: canonical,
	}, nil
}
