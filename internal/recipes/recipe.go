// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package recipes holds the recipe data model and the client for the
// remote recipe collection endpoint.
package recipes

import "context"

// Recipe is one entry of the upstream collection. Fields are displayed as
// received; nothing is normalized.
type Recipe struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Image  string   `json:"image"`
	Rating float64  `json:"rating"`
	Tags   []string `json:"tags"`
}

// Collection is the top-level response document.
type Collection struct {
	Recipes []Recipe `json:"recipes"`
}

// Fetcher retrieves the recipe collection.
type Fetcher interface {
	FetchRecipes(ctx context.Context) (Collection, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (Collection, error)

// FetchRecipes calls f(ctx).
func (f FetcherFunc) FetchRecipes(ctx context.Context) (Collection, error) {
	return f(ctx)
}
