// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/log"
)

type fakeManager struct {
	startErr  error
	started   atomic.Bool
	shutdowns atomic.Int32
}

func (f *fakeManager) Start(ctx context.Context) error {
	f.started.Store(true)
	if f.startErr != nil {
		return f.startErr
	}
	<-ctx.Done()
	return nil
}

func (f *fakeManager) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	return nil
}

func (f *fakeManager) RegisterShutdownHook(string, ShutdownHook) {}

func TestApp_RequiresManager(t *testing.T) {
	app := NewApp(log.WithComponent("test"), nil, nil)
	assert.ErrorIs(t, app.Run(context.Background()), ErrMissingManager)
}

func TestApp_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	mgr := &fakeManager{}
	app := NewApp(log.WithComponent("test"), mgr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	assert.Eventually(t, mgr.started.Load, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, mgr.shutdowns.Load())
}

func TestApp_ManagerFailureShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("bind failed")
	mgr := &fakeManager{startErr: boom}
	app := NewApp(log.WithComponent("test"), mgr, nil)

	err := app.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), mgr.shutdowns.Load())
}

func TestApp_ConfigWatchTriggersReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

	var reloads atomic.Int32
	mgr := &fakeManager{}
	app := NewApp(log.WithComponent("test"), mgr, func(context.Context) error {
		reloads.Add(1)
		return errors.New("reload failures are only logged")
	}, WithConfigWatch(path))
	app.reloadSignal = nil

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	// The watcher may not be registered yet; writes are spaced wider than
	// the debounce window so each one can settle.
	for attempt := 0; attempt < 5 && reloads.Load() == 0; attempt++ {
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
		deadline := time.Now().Add(config.DefaultWatchDebounce + time.Second)
		for time.Now().Before(deadline) && reloads.Load() == 0 {
			time.Sleep(20 * time.Millisecond)
		}
	}
	assert.Positive(t, reloads.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
