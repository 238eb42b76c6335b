package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reqlint/reqlint/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresPaths(t *testing.T) {
	_, err := New(nil, func([]string) {}, nil)
	require.Error(t, err)
}

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(target, []byte("numpy<2.0.0\n"), 0o644))

	changed := make(chan []string, 1)
	w, err := New([]string{target}, func(paths []string) {
		select {
		case changed <- paths:
		default:
		}
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("numpy==1.26.4\n"), 0o644))

	select {
	case paths := <-changed:
		require.Len(t, paths, 1)
		abs, _ := filepath.Abs(target)
		require.Equal(t, abs, paths[0])
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "requirements.txt")
	other := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(target, []byte("pandas>=2.2.0\n"), 0o644))

	changed := make(chan []string, 1)
	w, err := New([]string{target}, func(paths []string) {
		select {
		case changed <- paths:
		default:
		}
	}, nil)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("scratch\n"), 0o644))

	select {
	case paths := <-changed:
		t.Fatalf("unexpected callback for %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(target, []byte(""), 0o644))

	w, err := New([]string{target}, func([]string) {}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
