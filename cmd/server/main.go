// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/refeed/docs" // swagger docs served at /swagger/*
	"github.com/tomtom215/refeed/internal/api"
	"github.com/tomtom215/refeed/internal/auth"
	"github.com/tomtom215/refeed/internal/bootstrap"
	"github.com/tomtom215/refeed/internal/config"
	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/metrics"
	"github.com/tomtom215/refeed/internal/objectstore"
	"github.com/tomtom215/refeed/internal/store"
	"github.com/tomtom215/refeed/internal/supervisor"
	"github.com/tomtom215/refeed/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("store_backend", cfg.Store.Backend).
		Str("session_store", cfg.Security.SessionStore).
		Bool("seed", cfg.Bootstrap.Seed).
		Msg("Starting Refeed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	mealStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open meal store")
	}
	defer func() {
		if err := mealStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close meal store")
		}
	}()

	if err := bootstrap.EnsureTable(ctx, mealStore, cfg.Bootstrap); err != nil {
		logging.Fatal().Err(err).Msg("Meal table is not available")
	}
	if cfg.Bootstrap.Seed {
		seeded := bootstrap.Seed(ctx, mealStore)
		logging.Info().Int("meals", seeded).Msg("Seeded meal table")
	}

	if cfg.ObjectStore.Enabled {
		ensurePhotoBucket(ctx, cfg.ObjectStore)
	}

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token manager")
	}
	credentials, err := auth.NewCredentialChecker(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize admin credentials")
	}
	enforcer, err := auth.NewEnforcer(credentials.Username())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization policy")
	}
	sessions, err := auth.NewSessionStore(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close session store")
		}
	}()

	handler := api.NewHandler(cfg, mealStore, sessions, tokens, credentials, version)
	router := api.NewRouter(handler, auth.NewMiddleware(tokens, sessions, enforcer), &cfg.Security)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMaintenanceService(services.NewSessionCleanupService(
		sessions, handler.LoginLimiter(), cfg.Security.SessionCleanupInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Refeed stopped")
}

// ensurePhotoBucket makes sure the photo bucket exists. Failure is not fatal
// because no endpoint reads photos from it yet.
func ensurePhotoBucket(ctx context.Context, cfg config.ObjectStoreConfig) {
	bucketCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	objects, err := objectstore.OpenS3Store(bucketCtx, cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("Object storage unavailable")
		return
	}
	if err := objectstore.EnsureBucket(bucketCtx, objects, cfg.Bucket); err != nil {
		logging.Warn().Err(err).Str("bucket", cfg.Bucket).Msg("Failed to ensure photo bucket")
		return
	}
	logging.Info().Str("bucket", cfg.Bucket).Msg("Photo bucket ready")
}
