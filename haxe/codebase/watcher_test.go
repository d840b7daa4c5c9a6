package codebase

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	path    string
	removed bool
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "w.hx", "a +")

	var changes []change
	c := New(dir, []string{".hx"})
	w := NewFileWatcher(c, time.Hour, func(p string, info *FileInfo) {
		changes = append(changes, change{path: p, removed: info == nil})
	})
	ctx := context.Background()

	w.Scan(ctx)
	require.Equal(t, []change{{path: path}}, changes)
	assert.Len(t, c.GetFile(path).Diagnostics(), 1)

	w.Scan(ctx)
	assert.Len(t, changes, 1, "unchanged file is not reparsed")

	require.NoError(t, os.WriteFile(path, []byte("a + b"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	w.Scan(ctx)
	require.Len(t, changes, 2)
	assert.Empty(t, c.GetFile(path).Diagnostics())

	require.NoError(t, os.Remove(path))
	w.Scan(ctx)
	require.Len(t, changes, 3)
	assert.Equal(t, change{path: path, removed: true}, changes[2])
	assert.Nil(t, c.GetFile(path))
}

func TestFileWatcherRunStops(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "r.hx", "1")

	seen := make(chan string, 1)
	w := NewFileWatcher(New(dir, []string{".hx"}), 10*time.Millisecond, func(p string, _ *FileInfo) {
		select {
		case seen <- p:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-seen:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the initial scan")
	}
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
