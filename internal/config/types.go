// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// AppConfig is the fully resolved runtime configuration.
type AppConfig struct {
	Version string `yaml:"-" json:"version"`

	LogLevel   string `json:"logLevel"`
	LogService string `json:"logService"`

	Recipes RecipesConfig `json:"recipes"`
	Page    PageConfig    `json:"page"`

	APIListenAddr string `json:"apiListenAddr"`

	MetricsEnabled bool   `json:"metricsEnabled"`
	MetricsAddr    string `json:"metricsAddr"`

	Telemetry TelemetryConfig     `json:"telemetry"`
	RateLimit RateLimitConfig     `json:"rateLimit"`
	Server    ServerRuntimeConfig `json:"server"`
}

// RecipesConfig controls the upstream recipe API and how cards present it.
type RecipesConfig struct {
	// URL is the collection endpoint fetched once per page mount.
	URL string `json:"url"`
	// LinkBase is joined with a recipe id to build each card's link.
	LinkBase string `json:"linkBase"`
	// MaxTags is the number of leading tags shown on a card.
	MaxTags int `json:"maxTags"`
	// FetchTimeout bounds the upstream request. Zero leaves it to the caller's context.
	FetchTimeout time.Duration `json:"fetchTimeout"`
	UserAgent    string        `json:"userAgent"`
	// UpstreamRPS caps outbound fetches per second across all pages. Zero is unlimited.
	UpstreamRPS   float64 `json:"upstreamRps"`
	UpstreamBurst int     `json:"upstreamBurst"`
}

// PageConfig holds the static page shell settings.
type PageConfig struct {
	Title  string       `json:"title"`
	Banner BannerConfig `json:"banner"`
}

// BannerConfig describes the decorative banner image.
type BannerConfig struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `json:"enabled"`
	Exporter     string  `json:"exporter"`
	Endpoint     string  `json:"endpoint"`
	Environment  string  `json:"environment"`
	SamplingRate float64 `json:"samplingRate"`
}

// RateLimitConfig configures the global HTTP rate limiter.
type RateLimitConfig struct {
	Enabled   bool     `json:"enabled"`
	RPS       int      `json:"rps"`
	Burst     int      `json:"burst"`
	Whitelist []string `json:"whitelist"`
}

// ServerRuntimeConfig holds the http.Server timeouts.
type ServerRuntimeConfig struct {
	ReadTimeout     time.Duration `json:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout"`
	IdleTimeout     time.Duration `json:"idleTimeout"`
	MaxHeaderBytes  int           `json:"maxHeaderBytes"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

// FileConfig mirrors the YAML file layout. Pointer fields distinguish
// "not set" from zero values so the file only overrides what it names.
type FileConfig struct {
	Log       *FileLog       `yaml:"log,omitempty"`
	Recipes   *FileRecipes   `yaml:"recipes,omitempty"`
	Page      *FilePage      `yaml:"page,omitempty"`
	API       *FileAPI       `yaml:"api,omitempty"`
	Metrics   *FileMetrics   `yaml:"metrics,omitempty"`
	Telemetry *FileTelemetry `yaml:"telemetry,omitempty"`
	RateLimit *FileRateLimit `yaml:"rateLimit,omitempty"`
	Server    *FileServer    `yaml:"server,omitempty"`
}

type FileLog struct {
	Level   string `yaml:"level,omitempty"`
	Service string `yaml:"service,omitempty"`
}

type FileRecipes struct {
	URL          string         `yaml:"url,omitempty"`
	LinkBase     string         `yaml:"linkBase,omitempty"`
	MaxTags      *int           `yaml:"maxTags,omitempty"`
	FetchTimeout *time.Duration `yaml:"fetchTimeout,omitempty"`
	UserAgent    string         `yaml:"userAgent,omitempty"`

	UpstreamRPS   *float64 `yaml:"upstreamRps,omitempty"`
	UpstreamBurst *int     `yaml:"upstreamBurst,omitempty"`
}

type FilePage struct {
	Title  string      `yaml:"title,omitempty"`
	Banner *FileBanner `yaml:"banner,omitempty"`
}

type FileBanner struct {
	Src string `yaml:"src,omitempty"`
	Alt string `yaml:"alt,omitempty"`
}

type FileAPI struct {
	ListenAddr string `yaml:"listenAddr,omitempty"`
}

type FileMetrics struct {
	Enabled    *bool  `yaml:"enabled,omitempty"`
	ListenAddr string `yaml:"listenAddr,omitempty"`
}

type FileTelemetry struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	Environment  string   `yaml:"environment,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}

type FileRateLimit struct {
	Enabled   *bool    `yaml:"enabled,omitempty"`
	RPS       *int     `yaml:"rps,omitempty"`
	Burst     *int     `yaml:"burst,omitempty"`
	Whitelist []string `yaml:"whitelist,omitempty"`
}

type FileServer struct {
	ReadTimeout     *time.Duration `yaml:"readTimeout,omitempty"`
	WriteTimeout    *time.Duration `yaml:"writeTimeout,omitempty"`
	IdleTimeout     *time.Duration `yaml:"idleTimeout,omitempty"`
	MaxHeaderBytes  *int           `yaml:"maxHeaderBytes,omitempty"`
	ShutdownTimeout *time.Duration `yaml:"shutdownTimeout,omitempty"`
}
