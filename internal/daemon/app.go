// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/log"
)

// ReloadFunc re-reads whatever runtime settings can change without a restart.
type ReloadFunc func(ctx context.Context) error

// App owns the runtime lifecycle around the Manager: reload triggers and
// the server group.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	reload       ReloadFunc
	reloadSignal os.Signal
	watchPath    string
}

// AppOption configures an App.
type AppOption func(*App)

// WithConfigWatch also triggers the reload when the file at path changes.
func WithConfigWatch(path string) AppOption {
	return func(a *App) { a.watchPath = path }
}

// NewApp creates a new App orchestrator. reload may be nil.
func NewApp(logger zerolog.Logger, manager Manager, reload ReloadFunc, opts ...AppOption) *App {
	a := &App{
		logger:       logger,
		manager:      manager,
		reload:       reload,
		reloadSignal: syscall.SIGHUP,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) runReload(ctx context.Context) {
	if err := a.reload(ctx); err != nil {
		a.logger.Warn().
			Err(err).
			Str(log.FieldEvent, "config.reload_failed").
			Msg("config reload failed")
	}
}

// Run blocks until ctx is cancelled or a server fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.reload != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str(log.FieldEvent, "config.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading config")

					a.runReload(ctx)
				}
			}
		})
	}

	// The file watcher is best-effort: a failure to start it is logged only.
	if a.reload != nil && a.watchPath != "" {
		g.Go(func() error {
			err := config.WatchFile(ctx, a.watchPath, config.DefaultWatchDebounce, a.runReload)
			if err != nil {
				a.logger.Warn().
					Err(err).
					Str(log.FieldEvent, "config.watcher_start_failed").
					Msg("failed to start config watcher")
			}
			return nil
		})
	}

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}
