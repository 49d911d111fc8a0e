// SPDX-License-Identifier: MIT

// Package middleware holds the HTTP ingress stack shared by every route.
package middleware

import (
	"github.com/go-chi/chi/v5"

	xglog "github.com/ManuGH/myrecipe/internal/log"
)

// StackConfig selects the cross-cutting middlewares applied to a router.
type StackConfig struct {
	// Security headers
	EnableSecurityHeaders bool
	CSP                   string

	// Observability
	EnableMetrics  bool
	TracingService string // empty disables tracing
	EnableLogging  bool

	// Rate limiting
	RateLimit APIRateLimitConfig
}

// NewRouter constructs a chi router with the canonical middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the middleware stack to r, outermost first.
func ApplyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	if cfg.EnableSecurityHeaders {
		r.Use(SecurityHeaders(cfg.CSP))
	}
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.TracingService != "" {
		r.Use(Tracing(cfg.TracingService))
	}
	// Logging sits inside tracing so the access log covers handler latency only.
	if cfg.EnableLogging {
		r.Use(xglog.Middleware())
	}
	if cfg.RateLimit.Enabled {
		r.Use(APIRateLimit(cfg.RateLimit))
	}
}
