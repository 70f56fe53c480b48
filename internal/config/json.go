// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the on-disk layout.
// Comments and trailing commas are allowed.
type StructuredJSONConfig struct {
	App struct {
		Version       string `json:"version"`
		LogFormat     string `json:"log_format"`
		SessionDriver string `json:"session_driver"`
	} `json:"app"`

	Remote struct {
		Owner  string `json:"owner"`
		Repo   string `json:"repo"`
		Branch string `json:"branch"`
		Path   string `json:"path"`
		Token  string `json:"token"`
		APIURL string `json:"api_url"`
	} `json:"remote"`

	Storage struct {
		Driver string `json:"driver"`
		Dir    string `json:"dir"`
		DSN    string `json:"dsn"`
	} `json:"storage"`

	Adapter struct {
		StoreURL        string          `json:"store_url"`
		CommunityURL    string          `json:"community_url"`
		ConnectivityURL string          `json:"connectivity_url"`
		RequestTimeout  models.Duration `json:"request_timeout"`
		DetailsInterval models.Duration `json:"details_interval"`
	} `json:"adapter"`

	Server struct {
		HTTPAddress    string          `json:"http_address"`
		RequestTimeout models.Duration `json:"request_timeout"`
	} `json:"server"`

	Workers struct {
		ClaimInterval       models.Duration `json:"claim_interval"`
		IdleTick            models.Duration `json:"idle_tick"`
		ConfigSyncInterval  models.Duration `json:"config_sync_interval"`
		SessionSyncInterval models.Duration `json:"session_sync_interval"`
		RetryDelay          models.Duration `json:"retry_delay"`
		RenewalTimeout      models.Duration `json:"renewal_timeout"`
		ReloginDelay        models.Duration `json:"relogin_delay"`
		PollInterval        models.Duration `json:"poll_interval"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	var jsonCfg StructuredJSONConfig
	if err := json.Unmarshal(jsonc.ToJSON(raw), &jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:       jsonCfg.App.Version,
			LogFormat:     jsonCfg.App.LogFormat,
			SessionDriver: jsonCfg.App.SessionDriver,
		},
		Remote: Remote{
			Owner:  jsonCfg.Remote.Owner,
			Repo:   jsonCfg.Remote.Repo,
			Branch: jsonCfg.Remote.Branch,
			Path:   jsonCfg.Remote.Path,
			Token:  jsonCfg.Remote.Token,
			APIURL: jsonCfg.Remote.APIURL,
		},
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			Dir:    jsonCfg.Storage.Dir,
			DSN:    jsonCfg.Storage.DSN,
		},
		Adapter: Adapter{
			StoreURL:        jsonCfg.Adapter.StoreURL,
			CommunityURL:    jsonCfg.Adapter.CommunityURL,
			ConnectivityURL: jsonCfg.Adapter.ConnectivityURL,
			RequestTimeout:  jsonCfg.Adapter.RequestTimeout.Std(),
			DetailsInterval: jsonCfg.Adapter.DetailsInterval.Std(),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: jsonCfg.Server.RequestTimeout.Std(),
		},
		Workers: Workers{
			ClaimInterval:       jsonCfg.Workers.ClaimInterval.Std(),
			IdleTick:            jsonCfg.Workers.IdleTick.Std(),
			ConfigSyncInterval:  jsonCfg.Workers.ConfigSyncInterval.Std(),
			SessionSyncInterval: jsonCfg.Workers.SessionSyncInterval.Std(),
			RetryDelay:          jsonCfg.Workers.RetryDelay.Std(),
			RenewalTimeout:      jsonCfg.Workers.RenewalTimeout.Std(),
			ReloginDelay:        jsonCfg.Workers.ReloginDelay.Std(),
			PollInterval:        jsonCfg.Workers.PollInterval.Std(),
		},
	}

	return cfg, nil
}
