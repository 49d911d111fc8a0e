// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api serves the rendered recipe page and the probe endpoints.
package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ManuGH/myrecipe/internal/api/middleware"
	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/health"
	"github.com/ManuGH/myrecipe/internal/log"
	"github.com/ManuGH/myrecipe/internal/recipes"
	"github.com/ManuGH/myrecipe/internal/ui"
)

const tracerName = "myrecipe.api"

// Server is the HTTP front end. Each page request mounts its own ui.App, so
// no recipe data outlives the request that fetched it.
type Server struct {
	cfg     config.AppConfig
	fetcher recipes.Fetcher
	health  *health.Manager
	router  chi.Router
}

// New builds the server and its routes.
func New(deps Deps) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     deps.Config,
		fetcher: deps.Fetcher,
		health:  deps.Health,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	tracing := ""
	if s.cfg.Telemetry.Enabled {
		tracing = tracerName
	}
	r := middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		TracingService:        tracing,
		EnableLogging:         true,
		RateLimit: middleware.APIRateLimitConfig{
			Enabled:   s.cfg.RateLimit.Enabled,
			RPS:       s.cfg.RateLimit.RPS,
			Burst:     s.cfg.RateLimit.Burst,
			Whitelist: s.cfg.RateLimit.Whitelist,
		},
	})
	r.Use(chimw.GetHead)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	return r
}

// NewPageApp builds a page root for cfg. The logger receives the single
// fetch-failure line.
func NewPageApp(cfg config.AppConfig, fetcher recipes.Fetcher, logger zerolog.Logger) *ui.App {
	return ui.NewApp(fetcher,
		ui.WithLogger(logger),
		ui.WithCardOptions(ui.CardOptions{
			LinkBase: cfg.Recipes.LinkBase,
			MaxTags:  cfg.Recipes.MaxTags,
		}),
		ui.WithBanner(ui.Banner{Src: cfg.Page.Banner.Src, Alt: cfg.Page.Banner.Alt}),
		ui.WithTitle(cfg.Page.Title),
	)
}

// handlePage mounts an App, waits for its fetch to settle and renders it.
// A fetch failure still renders the page shell with an empty grid.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	app := NewPageApp(s.cfg, s.fetcher, log.WithComponentFromContext(r.Context(), "ui"))
	app.Mount(r.Context())
	defer app.Unmount()

	select {
	case <-app.Settled():
	case <-r.Context().Done():
		return
	}

	var buf bytes.Buffer
	if err := app.Render(&buf); err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "page.render_failed").
			Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
