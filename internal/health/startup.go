// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/log"
	platformnet "github.com/ManuGH/myrecipe/internal/platform/net"
)

// PerformStartupChecks validates runtime-critical settings before the listeners open.
func PerformStartupChecks(_ context.Context, cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Msg("running pre-flight startup checks")

	if err := checkListenAddrs(logger, cfg); err != nil {
		return fmt.Errorf("listen address check failed: %w", err)
	}
	if err := checkUpstream(logger, cfg.Recipes.URL); err != nil {
		return fmt.Errorf("upstream check failed: %w", err)
	}

	logger.Info().Msg("all startup checks passed")
	return nil
}

func checkListenAddrs(logger zerolog.Logger, cfg config.AppConfig) error {
	apiPort, err := listenPort(cfg.APIListenAddr)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	logger.Info().Str("addr", cfg.APIListenAddr).Msg("API listen address is valid")

	if !cfg.MetricsEnabled {
		return nil
	}
	metricsPort, err := listenPort(cfg.MetricsAddr)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if apiPort != 0 && apiPort == metricsPort {
		return fmt.Errorf("metrics listener %q collides with API listener %q", cfg.MetricsAddr, cfg.APIListenAddr)
	}
	logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listen address is valid")
	return nil
}

func listenPort(addr string) (int, error) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return 0, fmt.Errorf("invalid listen port %q in %q", port, addr)
	}
	return n, nil
}

func checkUpstream(logger zerolog.Logger, raw string) error {
	u, err := platformnet.ParseUpstreamURL(raw)
	if err != nil {
		return fmt.Errorf("recipes URL: %w", err)
	}
	logger.Info().Str(log.FieldUpstreamURL, platformnet.SanitizeURL(u.String())).Msg("recipes URL is valid")
	return nil
}
