// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"errors"

	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/health"
	"github.com/ManuGH/myrecipe/internal/recipes"
)

var (
	ErrMissingFetcher = errors.New("api: recipe fetcher is required")
	ErrMissingHealth  = errors.New("api: health manager is required")
)

// Deps holds all dependencies for the API server.
type Deps struct {
	Config  config.AppConfig
	Fetcher recipes.Fetcher
	Health  *health.Manager
}

func (d Deps) validate() error {
	if d.Fetcher == nil {
		return ErrMissingFetcher
	}
	if d.Health == nil {
		return ErrMissingHealth
	}
	return nil
}
