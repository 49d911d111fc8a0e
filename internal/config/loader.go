// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names. ENV always wins over the file.
const (
	EnvRecipesURL      = "MYRECIPE_RECIPES_URL"
	EnvLinkBase        = "MYRECIPE_LINK_BASE"
	EnvMaxTags         = "MYRECIPE_MAX_TAGS"
	EnvFetchTimeout    = "MYRECIPE_FETCH_TIMEOUT"
	EnvUserAgent       = "MYRECIPE_USER_AGENT"
	EnvUpstreamRPS     = "MYRECIPE_UPSTREAM_RPS"
	EnvUpstreamBurst   = "MYRECIPE_UPSTREAM_BURST"
	EnvPageTitle       = "MYRECIPE_PAGE_TITLE"
	EnvBannerSrc       = "MYRECIPE_BANNER_SRC"
	EnvBannerAlt       = "MYRECIPE_BANNER_ALT"
	EnvListen          = "MYRECIPE_LISTEN"
	EnvMetricsEnabled  = "MYRECIPE_METRICS_ENABLED"
	EnvMetricsListen   = "MYRECIPE_METRICS_LISTEN"
	EnvLogLevel        = "MYRECIPE_LOG_LEVEL"
	EnvLogService      = "MYRECIPE_LOG_SERVICE"
	EnvTelemetry       = "MYRECIPE_TELEMETRY_ENABLED"
	EnvTelemetryExp    = "MYRECIPE_TELEMETRY_EXPORTER"
	EnvTelemetryEP     = "MYRECIPE_TELEMETRY_ENDPOINT"
	EnvTelemetryEnv    = "MYRECIPE_TELEMETRY_ENVIRONMENT"
	EnvTelemetryRate   = "MYRECIPE_TELEMETRY_SAMPLING_RATE"
	EnvRateLimit       = "MYRECIPE_RATELIMIT_ENABLED"
	EnvRateLimitRPS    = "MYRECIPE_RATELIMIT_RPS"
	EnvRateLimitBurst  = "MYRECIPE_RATELIMIT_BURST"
	EnvRateLimitAllow  = "MYRECIPE_RATELIMIT_WHITELIST"
	EnvReadTimeout     = "MYRECIPE_SERVER_READ_TIMEOUT"
	EnvWriteTimeout    = "MYRECIPE_SERVER_WRITE_TIMEOUT"
	EnvIdleTimeout     = "MYRECIPE_SERVER_IDLE_TIMEOUT"
	EnvMaxHeaderBytes  = "MYRECIPE_SERVER_MAX_HEADER_BYTES"
	EnvShutdownTimeout = "MYRECIPE_SERVER_SHUTDOWN_TIMEOUT"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

func (l *Loader) envList(key string, defaultVal []string) []string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseStringList(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// The file is parsed strictly, then ENV is applied, then the result is validated.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFileConfig(&cfg, fileCfg)
	}

	l.mergeEnvConfig(&cfg)

	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields cause an error wrapping ErrUnknownConfigField.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: %s (only YAML supported)", ErrUnsupportedFormat, ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return ParseFile(data)
}

// ParseFile decodes a single strict YAML document.
func ParseFile(data []byte) (*FileConfig, error) {
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "not found in type") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(cfg *AppConfig, f *FileConfig) {
	if f == nil {
		return
	}
	if f.Log != nil {
		setString(&cfg.LogLevel, f.Log.Level)
		setString(&cfg.LogService, f.Log.Service)
	}
	if r := f.Recipes; r != nil {
		setString(&cfg.Recipes.URL, r.URL)
		setString(&cfg.Recipes.LinkBase, r.LinkBase)
		setString(&cfg.Recipes.UserAgent, r.UserAgent)
		if r.MaxTags != nil {
			cfg.Recipes.MaxTags = *r.MaxTags
		}
		if r.FetchTimeout != nil {
			cfg.Recipes.FetchTimeout = *r.FetchTimeout
		}
		if r.UpstreamRPS != nil {
			cfg.Recipes.UpstreamRPS = *r.UpstreamRPS
		}
		if r.UpstreamBurst != nil {
			cfg.Recipes.UpstreamBurst = *r.UpstreamBurst
		}
	}
	if p := f.Page; p != nil {
		setString(&cfg.Page.Title, p.Title)
		if p.Banner != nil {
			setString(&cfg.Page.Banner.Src, p.Banner.Src)
			setString(&cfg.Page.Banner.Alt, p.Banner.Alt)
		}
	}
	if f.API != nil {
		setString(&cfg.APIListenAddr, f.API.ListenAddr)
	}
	if m := f.Metrics; m != nil {
		if m.Enabled != nil {
			cfg.MetricsEnabled = *m.Enabled
		}
		setString(&cfg.MetricsAddr, m.ListenAddr)
	}
	if t := f.Telemetry; t != nil {
		if t.Enabled != nil {
			cfg.Telemetry.Enabled = *t.Enabled
		}
		setString(&cfg.Telemetry.Exporter, t.Exporter)
		setString(&cfg.Telemetry.Endpoint, t.Endpoint)
		setString(&cfg.Telemetry.Environment, t.Environment)
		if t.SamplingRate != nil {
			cfg.Telemetry.SamplingRate = *t.SamplingRate
		}
	}
	if rl := f.RateLimit; rl != nil {
		if rl.Enabled != nil {
			cfg.RateLimit.Enabled = *rl.Enabled
		}
		if rl.RPS != nil {
			cfg.RateLimit.RPS = *rl.RPS
		}
		if rl.Burst != nil {
			cfg.RateLimit.Burst = *rl.Burst
		}
		if len(rl.Whitelist) > 0 {
			cfg.RateLimit.Whitelist = append([]string(nil), rl.Whitelist...)
		}
	}
	if s := f.Server; s != nil {
		if s.ReadTimeout != nil {
			cfg.Server.ReadTimeout = *s.ReadTimeout
		}
		if s.WriteTimeout != nil {
			cfg.Server.WriteTimeout = *s.WriteTimeout
		}
		if s.IdleTimeout != nil {
			cfg.Server.IdleTimeout = *s.IdleTimeout
		}
		if s.MaxHeaderBytes != nil {
			cfg.Server.MaxHeaderBytes = *s.MaxHeaderBytes
		}
		if s.ShutdownTimeout != nil {
			cfg.Server.ShutdownTimeout = *s.ShutdownTimeout
		}
	}
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.LogService = l.envString(EnvLogService, cfg.LogService)

	cfg.Recipes.URL = l.envString(EnvRecipesURL, cfg.Recipes.URL)
	cfg.Recipes.LinkBase = l.envString(EnvLinkBase, cfg.Recipes.LinkBase)
	cfg.Recipes.MaxTags = l.envInt(EnvMaxTags, cfg.Recipes.MaxTags)
	cfg.Recipes.FetchTimeout = l.envDuration(EnvFetchTimeout, cfg.Recipes.FetchTimeout)
	cfg.Recipes.UserAgent = l.envString(EnvUserAgent, cfg.Recipes.UserAgent)
	cfg.Recipes.UpstreamRPS = l.envFloat(EnvUpstreamRPS, cfg.Recipes.UpstreamRPS)
	cfg.Recipes.UpstreamBurst = l.envInt(EnvUpstreamBurst, cfg.Recipes.UpstreamBurst)

	cfg.Page.Title = l.envString(EnvPageTitle, cfg.Page.Title)
	cfg.Page.Banner.Src = l.envString(EnvBannerSrc, cfg.Page.Banner.Src)
	cfg.Page.Banner.Alt = l.envString(EnvBannerAlt, cfg.Page.Banner.Alt)

	cfg.APIListenAddr = l.envString(EnvListen, cfg.APIListenAddr)
	cfg.MetricsEnabled = l.envBool(EnvMetricsEnabled, cfg.MetricsEnabled)
	cfg.MetricsAddr = l.envString(EnvMetricsListen, cfg.MetricsAddr)

	cfg.Telemetry.Enabled = l.envBool(EnvTelemetry, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString(EnvTelemetryExp, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString(EnvTelemetryEP, cfg.Telemetry.Endpoint)
	cfg.Telemetry.Environment = l.envString(EnvTelemetryEnv, cfg.Telemetry.Environment)
	cfg.Telemetry.SamplingRate = l.envFloat(EnvTelemetryRate, cfg.Telemetry.SamplingRate)

	cfg.RateLimit.Enabled = l.envBool(EnvRateLimit, cfg.RateLimit.Enabled)
	cfg.RateLimit.RPS = l.envInt(EnvRateLimitRPS, cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = l.envInt(EnvRateLimitBurst, cfg.RateLimit.Burst)
	cfg.RateLimit.Whitelist = l.envList(EnvRateLimitAllow, cfg.RateLimit.Whitelist)

	cfg.Server.ReadTimeout = l.envDuration(EnvReadTimeout, cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = l.envDuration(EnvWriteTimeout, cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = l.envDuration(EnvIdleTimeout, cfg.Server.IdleTimeout)
	cfg.Server.MaxHeaderBytes = l.envInt(EnvMaxHeaderBytes, cfg.Server.MaxHeaderBytes)
	cfg.Server.ShutdownTimeout = l.envDuration(EnvShutdownTimeout, cfg.Server.ShutdownTimeout)
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
