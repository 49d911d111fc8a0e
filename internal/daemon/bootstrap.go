// SPDX-License-Identifier: MIT

// Package daemon wires the recipe front end into long-running servers and
// manages their lifecycle.
package daemon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/myrecipe/internal/api"
	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/health"
	"github.com/ManuGH/myrecipe/internal/log"
	"github.com/ManuGH/myrecipe/internal/recipes"
	"github.com/ManuGH/myrecipe/internal/telemetry"
)

// Runtime is the fully wired daemon.
type Runtime struct {
	Config    config.AppConfig
	Client    *recipes.Client
	Health    *health.Manager
	API       *api.Server
	Telemetry *telemetry.Provider
	Manager   Manager
}

// NewRecipeClient builds the upstream client from the recipes settings.
func NewRecipeClient(cfg config.RecipesConfig) *recipes.Client {
	return recipes.New(cfg.URL,
		recipes.WithTimeout(cfg.FetchTimeout),
		recipes.WithUserAgent(cfg.UserAgent),
		recipes.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
	)
}

// Bootstrap wires every component for cfg. Telemetry failures are logged
// and tracing is left disabled; anything else is fatal.
func Bootstrap(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger) (*Runtime, error) {
	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry initialization failed, continuing without tracing")
		provider = nil
	} else if provider.Enabled() {
		logger.Info().
			Str("exporter", cfg.Telemetry.Exporter).
			Str("endpoint", cfg.Telemetry.Endpoint).
			Float64("sampling_rate", cfg.Telemetry.SamplingRate).
			Msg("telemetry initialized")
	}

	client := NewRecipeClient(cfg.Recipes)

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewLastFetchChecker(func() (time.Time, error) {
		if last := client.LastFetch(); last != nil {
			return last.At, last.Err
		}
		return time.Time{}, nil
	}))

	srv, err := api.New(api.Deps{
		Config:  cfg,
		Fetcher: client,
		Health:  hm,
	})
	if err != nil {
		return nil, fmt.Errorf("build api server: %w", err)
	}

	deps := Deps{
		Logger:     logger,
		Config:     cfg,
		APIHandler: srv.Handler(),
	}
	if cfg.MetricsEnabled {
		deps.MetricsHandler = promhttp.Handler()
		deps.MetricsAddr = strings.TrimSpace(cfg.MetricsAddr)
		if deps.MetricsAddr == "" {
			deps.MetricsAddr = config.DefaultMetricsAddr
		}
	}

	mgr, err := NewManager(config.ParseServerConfigForApp(cfg), deps)
	if err != nil {
		return nil, err
	}
	mgr.RegisterShutdownHook("telemetry", provider.Shutdown)

	logger.Info().
		Str(log.FieldEvent, "daemon.bootstrapped").
		Str("upstream", client.Endpoint()).
		Str("metrics_addr", deps.MetricsAddr).
		Msg("daemon wired")

	return &Runtime{
		Config:    cfg,
		Client:    client,
		Health:    hm,
		API:       srv,
		Telemetry: provider,
		Manager:   mgr,
	}, nil
}
