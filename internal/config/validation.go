// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for myrecipe.
package config

import (
	"fmt"
	"strings"

	"github.com/ManuGH/myrecipe/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.URL("recipes.url", cfg.Recipes.URL, []string{"http", "https"})
	v.URL("recipes.linkBase", cfg.Recipes.LinkBase, []string{"http", "https"})
	v.Range("recipes.maxTags", cfg.Recipes.MaxTags, 1, 50)
	v.FloatRange("recipes.upstreamRps", cfg.Recipes.UpstreamRPS, 0, 10000)
	v.NonNegative("recipes.upstreamBurst", cfg.Recipes.UpstreamBurst)
	if cfg.Recipes.FetchTimeout < 0 {
		v.AddError("recipes.fetchTimeout", "timeout cannot be negative", cfg.Recipes.FetchTimeout)
	}

	v.NotEmpty("banner.src", cfg.Page.Banner.Src)
	v.NotEmpty("banner.alt", cfg.Page.Banner.Alt)

	v.ListenAddr("api.listenAddr", cfg.APIListenAddr)
	if cfg.MetricsEnabled {
		v.ListenAddr("metrics.listenAddr", cfg.MetricsAddr)
	}

	v.OneOf("log.level", strings.ToLower(cfg.LogLevel), validate.LogLevels)

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.FloatRange("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	if cfg.RateLimit.Enabled {
		v.Range("rateLimit.rps", cfg.RateLimit.RPS, 1, 100000)
		v.NonNegative("rateLimit.burst", cfg.RateLimit.Burst)
	}
	v.IPOrCIDR("rateLimit.whitelist", cfg.RateLimit.Whitelist)

	v.NonNegative("server.maxHeaderBytes", cfg.Server.MaxHeaderBytes)

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
