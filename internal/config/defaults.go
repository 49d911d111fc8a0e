// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

const (
	DefaultRecipesURL   = "https://dummyjson.com/recipes"
	DefaultLinkBase     = "https://dummyjson.com/recipes"
	DefaultMaxTags      = 2
	DefaultUserAgent    = "myrecipe"
	DefaultPageTitle    = "My Recipe"
	DefaultBannerSrc    = "https://www.instacart.com/company/wp-content/uploads/2022/11/cooking-statistics-hero.jpg"
	DefaultBannerAlt    = "banner"
	DefaultListenAddr   = ":8088"
	DefaultMetricsAddr  = ":9090"
	DefaultLogLevel     = "info"
	DefaultLogService   = "myrecipe"
	DefaultExporter     = "grpc"
	DefaultEndpoint     = "localhost:4317"
	DefaultEnvironment  = "development"
	DefaultSamplingRate = 1.0
	DefaultRateLimitRPS = 20
	DefaultRateBurst    = 40

	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultMaxHeaderBytes  = 1 << 20 // 1 MB
	defaultShutdownTimeout = 15 * time.Second
)

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel:   DefaultLogLevel,
		LogService: DefaultLogService,
		Recipes: RecipesConfig{
			URL:       DefaultRecipesURL,
			LinkBase:  DefaultLinkBase,
			MaxTags:   DefaultMaxTags,
			UserAgent: DefaultUserAgent,
		},
		Page: PageConfig{
			Title: DefaultPageTitle,
			Banner: BannerConfig{
				Src: DefaultBannerSrc,
				Alt: DefaultBannerAlt,
			},
		},
		APIListenAddr:  DefaultListenAddr,
		MetricsEnabled: false,
		MetricsAddr:    DefaultMetricsAddr,
		Telemetry: TelemetryConfig{
			Enabled:      false,
			Exporter:     DefaultExporter,
			Endpoint:     DefaultEndpoint,
			Environment:  DefaultEnvironment,
			SamplingRate: DefaultSamplingRate,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     DefaultRateLimitRPS,
			Burst:   DefaultRateBurst,
		},
		Server: ServerRuntimeConfig{
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			MaxHeaderBytes:  defaultMaxHeaderBytes,
			ShutdownTimeout: defaultShutdownTimeout,
		},
	}
}
