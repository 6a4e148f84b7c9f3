// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-secure-api/internal/app"
	"github.com/MKhiriev/go-secure-api/internal/config"
	httpHandler "github.com/MKhiriev/go-secure-api/internal/handler/http"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/ratelimit"
	"github.com/MKhiriev/go-secure-api/internal/server"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/internal/workers"
	"github.com/spf13/cobra"
)

const appName = "go-secure-api"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Secure HTTP API with authentication and user routes",
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printBuildInfo()
			return runServer(cmd)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db := store.NewDB(cfg.Storage.DB, log)
	defer func() {
		if err := db.Close(); err != nil {
			log.Err(err).Msg("error closing database")
		}
	}()

	services := service.NewServices(store.NewStorages(db, log), cfg, log)

	rateStore, err := ratelimit.NewStore(cfg.Security.RateLimit)
	if err != nil {
		return fmt.Errorf("creating rate-limit store: %w", err)
	}

	bgWorkers := workers.NewWorkers()
	if sweeper, ok := rateStore.(ratelimit.Sweeper); ok {
		bgWorkers.Add(workers.NewJanitor("ratelimit", cfg.Security.RateLimit.CleanupEvery, sweeper.Sweep, log))
	}

	handler := httpHandler.NewHandler(services, cfg, rateStore, log)
	srv, err := server.NewServer(handler.Init(), cfg, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return app.NewStartup(db, srv, bgWorkers, cfg, log).Run(ctx)
}

func runMigrate(cmd *cobra.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	db := store.NewDB(cfg.Storage.DB, log)
	defer db.Close()

	if err = db.Connect(cmd.Context()); err != nil {
		return err
	}
	if err = db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	log.Info().Str("dialect", string(db.Dialect())).Msg("migrations applied")
	return nil
}

// setup loads the configuration from the parsed flags and builds the
// logger matching the runtime mode.
func setup(cmd *cobra.Command) (*config.StructuredConfig, *logger.Logger, error) {
	cfg, err := config.GetStructuredConfig(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLogger(appName)
	if cfg.IsDevelopment() {
		log = logger.NewConsoleLogger(appName)
	}
	log.Debug().Str("mode", cfg.Mode).Str("address", cfg.Address()).Msg("received configs")

	return cfg, log, nil
}

func version() string {
	if buildVersion == "" {
		return "dev"
	}
	return buildVersion
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
