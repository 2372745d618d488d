package catalog

import (
	"context"
	"os"
	"time"
)

// ReloadFunc receives the freshly loaded catalog, or the error that kept the
// previous one in place.
type ReloadFunc func(c *Catalog, err error)

// Watcher polls the loader's files and reloads the catalog when any of them
// changes, appears or disappears.
type Watcher struct {
	loader   *Loader
	interval time.Duration
	onReload ReloadFunc

	lastMTime map[string]time.Time
}

// NewWatcher creates a watcher for loader polling at interval.
func NewWatcher(loader *Loader, interval time.Duration, onReload ReloadFunc) *Watcher {
	return &Watcher{
		loader:    loader,
		interval:  interval,
		onReload:  onReload,
		lastMTime: make(map[string]time.Time),
	}
}

// Run polls until ctx is done. The first scan only primes the mtime cache.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.scan()
	for {
		select {
		case <-ticker.C:
			if w.scan() {
				w.reload()
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) reload() {
	w.loader.Invalidate()
	c, err := w.loader.Load()
	if w.onReload != nil {
		w.onReload(c, err)
	}
}

// scan records current mtimes and reports whether anything differs from the
// previous scan.
func (w *Watcher) scan() bool {
	seen := make(map[string]time.Time)
	for _, p := range w.loader.WatchPaths() {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		seen[p] = fi.ModTime()
	}

	changed := len(seen) != len(w.lastMTime)
	for p, mt := range seen {
		if last, ok := w.lastMTime[p]; !ok || !mt.Equal(last) {
			changed = true
		}
	}
	w.lastMTime = seen
	return changed
}
