// Package maphost owns the live map and swaps in a freshly built graph when
// the map file changes. Searches hold on to the graph they started with, so
// a reload never mutates a graph that is being read.
package maphost

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/pdrpinto/pathtrace/internal/mapfile"
	"github.com/pdrpinto/pathtrace/internal/metrics"
)

const defaultDebounce = 200 * time.Millisecond

// Snapshot is a loaded map and the load counter it was published under.
type Snapshot struct {
	*mapfile.Map
	Version uint64
}

// Host serves the current map.
type Host struct {
	path     string
	log      *logrus.Logger
	current  atomic.Pointer[Snapshot]
	debounce time.Duration

	reloadMu sync.Mutex
}

// New loads the map at path.
func New(path string, log *logrus.Logger) (*Host, error) {
	h := &Host{path: path, log: log, debounce: defaultDebounce}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// Current returns the map in effect. The returned graph is never mutated.
func (h *Host) Current() *Snapshot {
	return h.current.Load()
}

// Version counts successful loads, starting at 1.
func (h *Host) Version() uint64 {
	return h.current.Load().Version
}

// Reload rebuilds the map from disk and swaps it in. On failure the
// previous map stays in effect.
func (h *Host) Reload() error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	m, err := mapfile.Load(h.path)
	if err != nil {
		metrics.MapReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("reloading map: %w", err)
	}

	var version uint64 = 1
	if previous := h.current.Load(); previous != nil {
		version = previous.Version + 1
	}
	h.current.Store(&Snapshot{Map: m, Version: version})
	metrics.MapReloadsTotal.WithLabelValues("ok").Inc()
	metrics.MapNodes.Set(float64(m.Graph.Len()))
	metrics.MapEdges.Set(float64(m.Graph.EdgeCount()))

	h.log.WithFields(logrus.Fields{
		"path":    h.path,
		"nodes":   m.Graph.Len(),
		"edges":   m.Graph.EdgeCount(),
		"version": version,
	}).Info("map loaded")

	return nil
}

// Watch reloads the map whenever its file is written, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up too.
func (h *Host) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating map watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		return fmt.Errorf("watching %s: %w", h.path, err)
	}

	target := filepath.Clean(h.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(h.debounce)
			} else {
				timer.Reset(h.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := h.Reload(); err != nil {
				h.log.WithError(err).Warn("map reload failed, keeping previous map")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.log.WithError(err).Warn("map watcher error")
		}
	}
}
