package codebase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ChangeFunc is called after a watched file was reparsed. info is nil when
// the file was removed.
type ChangeFunc func(path string, info *FileInfo)

// FileWatcher polls the codebase root and reparses files whose
// modification time changed.
type FileWatcher struct {
	codebase     *Codebase
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     ChangeFunc
}

func NewFileWatcher(c *Codebase, interval time.Duration, onChange ChangeFunc) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

// Run scans immediately and then on every tick until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Scan(ctx)
		}
	}
}

// Scan makes a single polling pass. It is not safe for concurrent use.
func (w *FileWatcher) Scan(ctx context.Context) {
	current := make(map[string]bool)

	filepath.Walk(w.codebase.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if info.IsDir() {
			if path != w.codebase.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.codebase.Matches(path) {
			return nil
		}

		current[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return nil
		}
		w.modTimes[path] = info.ModTime()
		if err := w.codebase.ScanFile(ctx, path); err != nil {
			log.Warningf("%s", err)
			return nil
		}
		if w.onChange != nil {
			w.onChange(path, w.codebase.GetFile(path))
		}
		return nil
	})
	if ctx.Err() != nil {
		return
	}

	for path := range w.modTimes {
		if current[path] {
			continue
		}
		delete(w.modTimes, path)
		w.codebase.RemoveFile(path)
		if w.onChange != nil {
			w.onChange(path, nil)
		}
	}
}
