// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ui

import (
	"io"
	"strconv"
	"strings"

	"github.com/ManuGH/myrecipe/internal/recipes"
)

const (
	DefaultLinkBase = "https://dummyjson.com/recipes"
	DefaultMaxTags  = 2
)

// CardOptions are the display knobs shared by all cards on a page.
// Zero fields fall back to DefaultLinkBase and DefaultMaxTags.
type CardOptions struct {
	LinkBase string
	MaxTags  int
}

func (o CardOptions) withDefaults() CardOptions {
	if strings.TrimSpace(o.LinkBase) == "" {
		o.LinkBase = DefaultLinkBase
	}
	if o.MaxTags <= 0 {
		o.MaxTags = DefaultMaxTags
	}
	return o
}

// Card displays one recipe. It holds its own copy of the recipe and never
// writes back to the caller.
type Card struct {
	recipe recipes.Recipe
	opts   CardOptions
}

// NewCard returns a Card for r.
func NewCard(r recipes.Recipe, opts CardOptions) Card {
	r.Tags = append([]string(nil), r.Tags...)
	return Card{recipe: r, opts: opts.withDefaults()}
}

// Recipe returns the displayed recipe.
func (c Card) Recipe() recipes.Recipe { return c.recipe }

// Tags returns at most MaxTags leading tags, in order.
func (c Card) Tags() []string {
	n := min(len(c.recipe.Tags), c.opts.MaxTags)
	return c.recipe.Tags[:n:n]
}

// Link is the detail URL: link base joined with the recipe id.
func (c Card) Link() string {
	return strings.TrimRight(c.opts.LinkBase, "/") + "/" + strconv.Itoa(c.recipe.ID)
}

// RatingText is the rating as displayed.
func (c Card) RatingText() string { return formatRating(c.recipe.Rating) }

type cardView struct {
	ID     int
	Name   string
	Image  string
	Rating string
	Tags   []string
	Link   string
}

func (c Card) view() cardView {
	return cardView{
		ID:     c.recipe.ID,
		Name:   c.recipe.Name,
		Image:  c.recipe.Image,
		Rating: c.RatingText(),
		Tags:   c.Tags(),
		Link:   c.Link(),
	}
}

// Render writes the card fragment.
func (c Card) Render(w io.Writer) error {
	return render(w, "card", c.view())
}
