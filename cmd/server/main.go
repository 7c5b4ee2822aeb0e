// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

// Package main is the entry point for the Ddalkkak server.
//
// Ddalkkak generates date itinerary recommendations for Seoul regions.
// A generation request selects venue candidates from the catalog, asks
// the configured LLM providers for a course proposal, validates the
// result and falls back to curated regional templates when every
// provider fails. Generated itineraries can be saved, confirmed,
// edited, copied, rated and shared.
//
// # Startup order
//
//  1. Configuration: Koanf v2 layered config (defaults, YAML file,
//     DDALKKAK_-prefixed environment variables)
//  2. Logging: zerolog, JSON or console format
//  3. Storage: BadgerDB for the venue catalog and itinerary store
//  4. Templates: embedded fallback table, optionally overridden by
//     templates.path
//  5. Providers: OpenAI and/or Anthropic adapters, each behind its own
//     circuit breaker and client-side rate limiter
//  6. HTTP server: chi router with /api/v1 endpoints, /health and
//     Prometheus /metrics
//
// # Signal handling
//
// SIGINT/SIGTERM trigger a graceful shutdown: the listener stops
// accepting connections, in-flight requests get 10 seconds to finish,
// then the database is closed.
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

	badger "github.com/dgraph-io/badger/v4"

	"github.com/zzangoobrother/ddalkkak-date/internal/api"
	"github.com/zzangoobrother/ddalkkak-date/internal/catalog"
	"github.com/zzangoobrother/ddalkkak-date/internal/config"
	"github.com/zzangoobrother/ddalkkak-date/internal/itinerary"
	"github.com/zzangoobrother/ddalkkak-date/internal/logging"
	"github.com/zzangoobrother/ddalkkak-date/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	log := logging.With().Str("component", "server").Logger()

	db, err := openBadger(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	templates, err := itinerary.LoadTemplates(cfg.Templates.Path)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	providers := buildProviders(cfg.Providers)
	if len(providers) == 0 {
		log.Warn().Msg("no generation providers enabled, every course will come from templates")
	}

	svc := itinerary.NewService(
		catalog.NewBadgerSource(db),
		store.NewBadgerStore(db),
		itinerary.NewOrchestrator(providers, templates),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(api.NewHandler(svc), cfg.Server),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// openBadger opens the persistent database, or an in-memory one when
// no path is configured.
func openBadger(cfg config.StoreConfig) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	return badger.Open(opts)
}

// buildProviders assembles the provider chain in priority order:
// OpenAI first, Anthropic second.
func buildProviders(cfg config.ProvidersConfig) []itinerary.Provider {
	var providers []itinerary.Provider
	if cfg.OpenAI.Enabled {
		providers = append(providers, itinerary.NewOpenAIProvider(cfg.OpenAI))
	}
	if cfg.Anthropic.Enabled {
		providers = append(providers, itinerary.NewAnthropicProvider(cfg.Anthropic))
	}
	return providers
}
