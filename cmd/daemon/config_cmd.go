// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/version"
)

func runConfigCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stderr)
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:], stdout, stderr)
	case "dump":
		return runConfigDump(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  myrecipe config validate [--file|-f config.yaml]")
	fmt.Fprintln(w, "  myrecipe config dump [--file|-f config.yaml] [--format=yaml|json]")
}

func runConfigValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("myrecipe config validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := resolveConfigPath(file)
	if configPath == "" {
		fmt.Fprintf(stderr, "Error: --file is required (or set %s)\n", envConfigPath)
		return 2
	}

	if _, err := config.NewLoader(configPath, version.Version).Load(); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", configPath, err)
		return 1
	}

	fmt.Fprintf(stdout, "✓ %s is valid\n", configPath)
	return 0
}

// runConfigDump prints the effective configuration (defaults + file + env)
// in the file layout.
func runConfigDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("myrecipe config dump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	var format string

	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.NewLoader(resolveConfigPath(file), version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	fileCfg := fileConfigFromAppConfig(cfg)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_ = enc.Close()
		return 0
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "Unsupported format: %s (use yaml or json)\n", format)
		return 2
	}
}

func fileConfigFromAppConfig(cfg config.AppConfig) config.FileConfig {
	maxTags := cfg.Recipes.MaxTags
	fetchTimeout := cfg.Recipes.FetchTimeout
	upstreamRPS := cfg.Recipes.UpstreamRPS
	upstreamBurst := cfg.Recipes.UpstreamBurst
	metricsEnabled := cfg.MetricsEnabled
	telemetryEnabled := cfg.Telemetry.Enabled
	samplingRate := cfg.Telemetry.SamplingRate
	rateLimitEnabled := cfg.RateLimit.Enabled
	rps := cfg.RateLimit.RPS
	burst := cfg.RateLimit.Burst
	readTimeout := cfg.Server.ReadTimeout
	writeTimeout := cfg.Server.WriteTimeout
	idleTimeout := cfg.Server.IdleTimeout
	maxHeaderBytes := cfg.Server.MaxHeaderBytes
	shutdownTimeout := cfg.Server.ShutdownTimeout

	return config.FileConfig{
		Log: &config.FileLog{
			Level:   cfg.LogLevel,
			Service: cfg.LogService,
		},
		Recipes: &config.FileRecipes{
			URL:          cfg.Recipes.URL,
			LinkBase:     cfg.Recipes.LinkBase,
			MaxTags:      &maxTags,
			FetchTimeout: &fetchTimeout,
			UserAgent:    cfg.Recipes.UserAgent,

			UpstreamRPS:   &upstreamRPS,
			UpstreamBurst: &upstreamBurst,
		},
		Page: &config.FilePage{
			Title: cfg.Page.Title,
			Banner: &config.FileBanner{
				Src: cfg.Page.Banner.Src,
				Alt: cfg.Page.Banner.Alt,
			},
		},
		API: &config.FileAPI{ListenAddr: cfg.APIListenAddr},
		Metrics: &config.FileMetrics{
			Enabled:    &metricsEnabled,
			ListenAddr: cfg.MetricsAddr,
		},
		Telemetry: &config.FileTelemetry{
			Enabled:      &telemetryEnabled,
			Exporter:     cfg.Telemetry.Exporter,
			Endpoint:     cfg.Telemetry.Endpoint,
			Environment:  cfg.Telemetry.Environment,
			SamplingRate: &samplingRate,
		},
		RateLimit: &config.FileRateLimit{
			Enabled:   &rateLimitEnabled,
			RPS:       &rps,
			Burst:     &burst,
			Whitelist: cfg.RateLimit.Whitelist,
		},
		Server: &config.FileServer{
			ReadTimeout:     &readTimeout,
			WriteTimeout:    &writeTimeout,
			IdleTimeout:     &idleTimeout,
			MaxHeaderBytes:  &maxHeaderBytes,
			ShutdownTimeout: &shutdownTimeout,
		},
	}
}
