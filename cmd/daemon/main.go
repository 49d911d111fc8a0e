// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/daemon"
	"github.com/ManuGH/myrecipe/internal/health"
	xglog "github.com/ManuGH/myrecipe/internal/log"
	platformnet "github.com/ManuGH/myrecipe/internal/platform/net"
	"github.com/ManuGH/myrecipe/internal/version"
)

// envConfigPath names a config file when --config is not given.
const envConfigPath = "MYRECIPE_CONFIG"

// resolveConfigPath prefers the explicit flag over the environment.
func resolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return strings.TrimSpace(config.ParseString(envConfigPath, ""))
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "export":
			os.Exit(runExportCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	// Safe defaults until config is loaded
	xglog.Configure(xglog.Config{
		Level:   "info",
		Service: config.DefaultLogService,
		Version: version.Version,
	})

	logger := xglog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Precedence: ENV > File > Defaults
	effectiveConfigPath := resolveConfigPath(*configPath)
	loader := config.NewLoader(effectiveConfigPath, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "config.load_failed").
			Str("config_path", effectiveConfigPath).
			Msg("failed to load configuration")
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger = xglog.WithComponent("daemon")

	if effectiveConfigPath != "" {
		logger.Info().
			Str(xglog.FieldEvent, "config.loaded").
			Str("source", "file").
			Str("path", effectiveConfigPath).
			Int("env_overrides", len(loader.ConsumedEnvKeys)).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str(xglog.FieldEvent, "config.loaded").
			Str("source", "env+defaults").
			Int("env_overrides", len(loader.ConsumedEnvKeys)).
			Msg("loaded configuration from environment and defaults")
	}

	// Pre-flight checks (fail fast)
	if err := health.PerformStartupChecks(ctx, cfg); err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "startup.check_failed").
			Msg("startup checks failed, please verify configuration")
	}

	logger.Info().
		Str(xglog.FieldEvent, "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str("addr", cfg.APIListenAddr).
		Msg("starting myrecipe")

	logger.Info().Msgf("→ Upstream: %s", platformnet.SanitizeURL(cfg.Recipes.URL))
	logger.Info().Msgf("→ Card links: %s/{id} (%d tags)", strings.TrimRight(cfg.Recipes.LinkBase, "/"), cfg.Recipes.MaxTags)
	if cfg.Recipes.FetchTimeout > 0 {
		logger.Info().Msgf("→ Fetch timeout: %s", cfg.Recipes.FetchTimeout)
	} else {
		logger.Info().Msg("→ Fetch timeout: bound by request")
	}
	if cfg.MetricsEnabled {
		logger.Info().Msgf("→ Metrics: %s", cfg.MetricsAddr)
	}
	if !cfg.RateLimit.Enabled {
		logger.Warn().Msg("→ Rate limiting: disabled")
	}

	rt, err := daemon.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "manager.creation.failed").
			Msg("failed to wire daemon")
	}

	reload := func(context.Context) error {
		next, err := config.NewLoader(effectiveConfigPath, version.Version).Load()
		if err != nil {
			return err
		}
		// Only the log level is applied live; everything else needs a restart.
		xglog.Configure(xglog.Config{
			Level:   next.LogLevel,
			Service: next.LogService,
			Version: next.Version,
		})
		logger.Info().
			Str(xglog.FieldEvent, "config.reloaded").
			Str("log_level", next.LogLevel).
			Msg("log level reloaded")
		return nil
	}

	app := daemon.NewApp(logger, rt.Manager, reload, daemon.WithConfigWatch(effectiveConfigPath))
	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "manager.failed").
			Msg("daemon app failed")
	}

	logger.Info().Msg("server exiting")
}
