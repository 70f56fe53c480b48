// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-fleet-keeper process. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings: version, log format and the name of
	// the registered session driver.
	App App `envPrefix:"APP_"`

	// Remote addresses the object repository holding the shared fleet
	// document.
	Remote Remote `envPrefix:"GITHUB_"`

	// Storage selects the backend for per-account session documents.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds base URLs and timeouts of the outbound HTTP adapters.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Server holds settings for the optional status endpoint.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds loop cadences and retry delays.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level settings.
type App struct {
	// Version is reported by the status endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFormat is either "json" (default) or "console".
	// Env: APP_LOG_FORMAT
	LogFormat string `env:"LOG_FORMAT"`

	// SessionDriver names the RemoteSessionClient implementation registered
	// with session.RegisterDriver.
	// Env: APP_SESSION_DRIVER
	SessionDriver string `env:"SESSION_DRIVER"`
}

// Remote addresses the shared fleet document in a hosted repository.
type Remote struct {
	// Env: GITHUB_OWNER
	Owner string `env:"OWNER"`
	// Env: GITHUB_REPO
	Repo string `env:"REPO"`
	// Env: GITHUB_BRANCH
	Branch string `env:"BRANCH"`
	// Path of the document inside the repository.
	// Env: GITHUB_PATH
	Path string `env:"PATH"`
	// Token is the API bearer token.
	// Env: GITHUB_TOKEN
	Token string `env:"TOKEN"`
	// APIURL is the API base URL.
	// Env: GITHUB_API_URL
	APIURL string `env:"API_URL"`
}

// Storage selects the local document backend.
type Storage struct {
	// Driver is "file" (default) or "sqlite".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// Dir is the root directory of per-account JSON documents.
	// Env: STORAGE_DIR
	Dir string `env:"DIR"`

	// DSN is the SQLite data source name used when Driver is "sqlite".
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// Adapter holds base URLs of the outbound HTTP adapters.
type Adapter struct {
	// StoreURL serves the free catalog search and entry details.
	// Env: ADAPTER_STORE_URL
	StoreURL string `env:"STORE_URL"`

	// CommunityURL serves public profile pages for presence polling.
	// Env: ADAPTER_COMMUNITY_URL
	CommunityURL string `env:"COMMUNITY_URL"`

	// ConnectivityURL is probed while waiting for the network to come back.
	// Env: ADAPTER_CONNECTIVITY_URL
	ConnectivityURL string `env:"CONNECTIVITY_URL"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// DetailsInterval is the minimum spacing between entry detail lookups.
	// Env: ADAPTER_DETAILS_INTERVAL
	DetailsInterval time.Duration `env:"DETAILS_INTERVAL"`
}

// Server holds settings for the optional status endpoint.
type Server struct {
	// HTTPAddress is the listen address; empty disables the endpoint.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single status request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds loop cadences and retry settings.
type Workers struct {
	// Env: WORKERS_CLAIM_INTERVAL
	ClaimInterval time.Duration `env:"CLAIM_INTERVAL"`
	// Env: WORKERS_IDLE_TICK
	IdleTick time.Duration `env:"IDLE_TICK"`
	// Env: WORKERS_CONFIG_SYNC_INTERVAL
	ConfigSyncInterval time.Duration `env:"CONFIG_SYNC_INTERVAL"`
	// Env: WORKERS_SESSION_SYNC_INTERVAL
	SessionSyncInterval time.Duration `env:"SESSION_SYNC_INTERVAL"`
	// RetryDelay is the fixed backoff between retried network steps.
	// Env: WORKERS_RETRY_DELAY
	RetryDelay time.Duration `env:"RETRY_DELAY"`
	// RenewalTimeout re-enters login when no client event arrives in time.
	// Env: WORKERS_RENEWAL_TIMEOUT
	RenewalTimeout time.Duration `env:"RENEWAL_TIMEOUT"`
	// ReloginDelay separates a recovered fault from the next login.
	// Env: WORKERS_RELOGIN_DELAY
	ReloginDelay time.Duration `env:"RELOGIN_DELAY"`
	// PollInterval paces presence and connectivity polling.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the process configuration
// from env, the given command-line arguments (without the program name), the
// JSON file they point to, and the defaults, in that precedence order.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
