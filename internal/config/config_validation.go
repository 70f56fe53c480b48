// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] carries the
// minimum viable bootstrap configuration.
//
// Returns nil if the configuration is valid, or one of the package sentinel
// errors otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Remote.Owner == "" || cfg.Remote.Repo == "" || cfg.Remote.Path == "" || cfg.Remote.Token == "" {
		return ErrInvalidRemoteConfigs
	}

	switch cfg.Storage.Driver {
	case StorageDriverFile:
		if cfg.Storage.Dir == "" {
			return ErrInvalidStorageConfigs
		}
	case StorageDriverSQLite:
		if cfg.Storage.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.App.SessionDriver == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.App.LogFormat != LogFormatJSON && cfg.App.LogFormat != LogFormatConsole {
		return ErrInvalidAppConfigs
	}

	w := cfg.Workers
	if w.ClaimInterval <= 0 || w.IdleTick <= 0 || w.ConfigSyncInterval <= 0 ||
		w.SessionSyncInterval <= 0 || w.RetryDelay <= 0 || w.RenewalTimeout <= 0 ||
		w.ReloginDelay <= 0 || w.PollInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
