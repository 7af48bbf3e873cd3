package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverlay/coverlay/internal/logging"
)

func TestWatcher_TriggersOnReportChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "coverage"), 0o755))

	triggered := make(chan struct{}, 16)
	w, err := New(root, []string{"**/lcov.info"}, func() { triggered <- struct{}{} },
		logging.New(io.Discard, logging.Off))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the event loop a moment before producing events.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "coverage", "lcov.info"), []byte("SF:/a.ts\n"), 0o644))

	select {
	case <-triggered:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a trigger for a matching report file")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_Matches(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, []string{"**/lcov.info", "**/*.lcov"}, func() {},
		logging.New(io.Discard, logging.Off))
	require.NoError(t, err)
	defer w.fsw.Close()

	assert.True(t, w.matches(filepath.Join(root, "lcov.info")))
	assert.True(t, w.matches(filepath.Join(root, "deep", "nested", "run.lcov")))
	assert.False(t, w.matches(filepath.Join(root, "src", "app.ts")))
	assert.False(t, w.matches("/outside/lcov.info"))
}
