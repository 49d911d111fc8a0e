// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatchFile_EmptyPath(t *testing.T) {
	assert.NoError(t, WatchFile(context.Background(), "", 0, func(context.Context) {
		t.Fatal("onChange must not run")
	}))
}

func TestWatchFile_MissingDir(t *testing.T) {
	err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), 0, func(context.Context) {})
	assert.Error(t, err)
}

func TestWatchFile_CallsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))
	other := filepath.Join(dir, "other.yaml")

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, 20*time.Millisecond, func(context.Context) { calls.Add(1) })
	}()

	// Writes to a sibling file are ignored.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600)
		return calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
