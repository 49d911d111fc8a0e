// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"strings"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// ListenAddr is the address to listen on (e.g., ":8088")
	ListenAddr string

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration

	// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header's keys and values
	MaxHeaderBytes int

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown
	ShutdownTimeout time.Duration
}

const minShutdownTimeout = 3 * time.Second

// ParseServerConfigForApp resolves the http.Server settings from a loaded AppConfig,
// filling anything unset with the built-in defaults.
func ParseServerConfigForApp(cfg AppConfig) ServerConfig {
	base := Defaults().Server
	if cfg.Server.ReadTimeout > 0 {
		base.ReadTimeout = cfg.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout > 0 {
		base.WriteTimeout = cfg.Server.WriteTimeout
	}
	if cfg.Server.IdleTimeout > 0 {
		base.IdleTimeout = cfg.Server.IdleTimeout
	}
	if cfg.Server.MaxHeaderBytes > 0 {
		base.MaxHeaderBytes = cfg.Server.MaxHeaderBytes
	}
	if cfg.Server.ShutdownTimeout > 0 {
		base.ShutdownTimeout = cfg.Server.ShutdownTimeout
	}
	if base.ShutdownTimeout < minShutdownTimeout {
		base.ShutdownTimeout = minShutdownTimeout
	}

	listen := strings.TrimSpace(cfg.APIListenAddr)
	if listen == "" {
		listen = DefaultListenAddr
	}

	return ServerConfig{
		ListenAddr:      listen,
		ReadTimeout:     base.ReadTimeout,
		WriteTimeout:    base.WriteTimeout,
		IdleTimeout:     base.IdleTimeout,
		MaxHeaderBytes:  base.MaxHeaderBytes,
		ShutdownTimeout: base.ShutdownTimeout,
	}
}
