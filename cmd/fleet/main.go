// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-fleet-keeper/internal/app"
	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/models"

	_ "github.com/MKhiriev/go-fleet-keeper/internal/session/dryrun"
)

const appName = "go-fleet-keeper"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(build)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger(appName).Fatal().Err(err).Msg("error getting configs")
	}

	log := newLogger(cfg.App)
	log.Debug().
		Str("driver", cfg.App.SessionDriver).
		Str("storage", cfg.Storage.Driver).
		Str("repository", cfg.Remote.Owner+"/"+cfg.Remote.Repo).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	fleet, err := app.NewApp(ctx, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating fleet")
	}

	if err = fleet.Run(ctx); err != nil {
		log.Error().Err(err).Msg("fleet stopped with errors")
		stop()
		os.Exit(1)
	}
}

func newLogger(cfg config.App) *logger.Logger {
	if cfg.LogFormat == config.LogFormatConsole {
		return logger.NewConsoleLogger(appName)
	}
	return logger.NewLogger(appName)
}
