// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package ui

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	xglog "github.com/ManuGH/myrecipe/internal/log"
	"github.com/ManuGH/myrecipe/internal/recipes"
)

const DefaultTitle = "My Recipe"

// App is the page root. Mount starts the single recipe fetch; the result is
// kept in the App's state slot and rendered as one Card per recipe.
//
// The state slot is written only by the fetch completion. After Unmount a
// late completion is dropped, so a torn-down App never changes.
type App struct {
	fetcher recipes.Fetcher
	logger  zerolog.Logger
	cards   CardOptions
	banner  Banner
	title   string

	mountOnce sync.Once
	settled   chan struct{}

	mu        sync.Mutex
	state     []recipes.Recipe
	unmounted bool
	cancel    context.CancelFunc
}

// AppOption configures an App.
type AppOption func(*App)

// WithLogger sets the diagnostic logger used for fetch failures.
func WithLogger(l zerolog.Logger) AppOption {
	return func(a *App) { a.logger = l }
}

// WithCardOptions sets the options every Card is built with.
func WithCardOptions(o CardOptions) AppOption {
	return func(a *App) { a.cards = o.withDefaults() }
}

// WithBanner overrides the banner image.
func WithBanner(b Banner) AppOption {
	return func(a *App) { a.banner = b.withDefaults() }
}

// WithTitle sets the document title.
func WithTitle(title string) AppOption {
	return func(a *App) {
		if title != "" {
			a.title = title
		}
	}
}

// NewApp returns an unmounted App that will load recipes through fetcher.
func NewApp(fetcher recipes.Fetcher, opts ...AppOption) *App {
	a := &App{
		fetcher: fetcher,
		logger:  xglog.WithComponent("ui"),
		cards:   CardOptions{}.withDefaults(),
		banner:  DefaultBanner(),
		title:   DefaultTitle,
		settled: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mount starts the fetch in the background and returns immediately.
// Only the first call has an effect; a Mount after Unmount does nothing.
func (a *App) Mount(ctx context.Context) {
	a.mountOnce.Do(func() {
		fetchCtx, cancel := context.WithCancel(ctx)
		a.mu.Lock()
		a.cancel = cancel
		if a.unmounted {
			cancel()
		}
		a.mu.Unlock()
		go a.load(fetchCtx)
	})
}

func (a *App) load(ctx context.Context) {
	defer close(a.settled)

	coll, err := a.fetcher.FetchRecipes(ctx)

	a.mu.Lock()
	stale := a.unmounted || ctx.Err() != nil
	if !stale && err == nil {
		a.state = append([]recipes.Recipe(nil), coll.Recipes...)
	}
	cancel := a.cancel
	a.mu.Unlock()
	cancel()

	switch {
	case stale:
		a.logger.Debug().Str(xglog.FieldEvent, "recipes.fetch.discarded").Msg("fetch completed after unmount")
	case err != nil:
		a.logger.Error().Err(err).Str(xglog.FieldEvent, "recipes.fetch.failed").Msg("failed to fetch recipes")
	default:
		a.logger.Debug().Int(xglog.FieldRecipes, len(coll.Recipes)).Msg("recipes loaded")
	}
}

// Unmount tears the App down: the in-flight fetch is canceled and any
// completion arriving later is discarded. It is safe to call more than once.
func (a *App) Unmount() {
	a.mu.Lock()
	a.unmounted = true
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	// Never mounted: settle now and make later Mount calls no-ops.
	a.mountOnce.Do(func() { close(a.settled) })
}

// Settled is closed once the fetch completion has been handled,
// or when an App that was never mounted is unmounted.
func (a *App) Settled() <-chan struct{} {
	return a.settled
}

// Recipes returns a copy of the current state.
func (a *App) Recipes() []recipes.Recipe {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]recipes.Recipe(nil), a.state...)
}

// Cards returns one Card per recipe in state order.
func (a *App) Cards() []Card {
	rs := a.Recipes()
	cards := make([]Card, len(rs))
	for i, r := range rs {
		cards[i] = NewCard(r, a.cards)
	}
	return cards
}

type pageView struct {
	Title  string
	NavBar NavBar
	Banner Banner
	Cards  []cardView
	Footer Footer
}

// Render writes the full HTML document for the current state.
// An empty state renders an empty grid.
func (a *App) Render(w io.Writer) error {
	cards := a.Cards()
	views := make([]cardView, len(cards))
	for i, c := range cards {
		views[i] = c.view()
	}
	return render(w, "page", pageView{
		Title:  a.title,
		Banner: a.banner,
		Cards:  views,
	})
}
