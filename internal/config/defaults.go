// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Storage drivers accepted by [Storage.Driver].
const (
	StorageDriverFile   = "file"
	StorageDriverSQLite = "sqlite"
)

// Log formats accepted by [App.LogFormat].
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogFormat: LogFormatJSON,
		},
		Remote: Remote{
			Branch: "main",
			Path:   "config.json",
			APIURL: "https://api.github.com",
		},
		Storage: Storage{
			Driver: StorageDriverFile,
			Dir:    "data",
			DSN:    "file:data/fleet.db?_journal_mode=WAL",
		},
		Adapter: Adapter{
			StoreURL:        "https://store.steampowered.com",
			CommunityURL:    "https://steamcommunity.com",
			ConnectivityURL: "https://www.google.com/generate_204",
			RequestTimeout:  60 * time.Second,
			DetailsInterval: 1500 * time.Millisecond,
		},
		Server: Server{
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			ClaimInterval:       time.Minute,
			IdleTick:            2500 * time.Millisecond,
			ConfigSyncInterval:  10 * time.Second,
			SessionSyncInterval: 10 * time.Minute,
			RetryDelay:          10 * time.Second,
			RenewalTimeout:      time.Minute,
			ReloginDelay:        10 * time.Second,
			PollInterval:        10 * time.Second,
		},
	}
}
