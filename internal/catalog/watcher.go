package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"atelier/internal/eventbus"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watcher re-imports the seed file whenever it changes on disk and publishes
// CatalogChanged when the catalogue was modified.
type Watcher struct {
	path     string
	store    *Store
	bus      eventbus.EventBus
	log      *zap.Logger
	debounce time.Duration
	fsw      *fsnotify.Watcher

	closeOnce sync.Once
	closeErr  error
}

// NewWatcher starts watching the seed file's directory. Editors commonly
// replace files by rename, so the directory is watched rather than the file.
func NewWatcher(path string, store *Store, bus eventbus.EventBus, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving seed path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		store:    store,
		bus:      bus,
		log:      log.Named("watcher"),
		debounce: debounce,
		fsw:      fsw,
	}, nil
}

// Run processes filesystem events until ctx is done, then releases the
// watcher. It always returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.log.Info("watching seed file", zap.String("path", w.path))
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("seed event", zap.String("op", event.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			if _, err := w.Reload(ctx); err != nil {
				w.log.Error("reloading seed failed", zap.Error(err))
				if w.bus != nil {
					w.bus.Publish(eventbus.ErrorEvent{Message: "reloading catalogue", Err: err})
				}
			}
		}
	}
}

// Close releases the filesystem watch. It is safe to call more than once and
// is only needed when Run is never started.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

// Reload imports the seed file with pruning. A missing or empty file leaves
// the catalogue untouched, since editors truncate before writing.
func (w *Watcher) Reload(ctx context.Context) (ImportResult, error) {
	info, err := os.Stat(w.path)
	if errors.Is(err, os.ErrNotExist) {
		w.log.Debug("seed file gone, keeping catalogue")
		return ImportResult{}, nil
	}
	if err == nil && info.Size() == 0 {
		return ImportResult{}, nil
	}

	artworks, err := LoadSeed(w.path)
	if err != nil {
		return ImportResult{}, err
	}

	res, err := Import(ctx, w.store, artworks, true, nil)
	if err != nil {
		return res, err
	}
	w.log.Info("catalogue reloaded",
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("removed", res.Removed))

	if res.Changed() && w.bus != nil {
		w.bus.Publish(eventbus.CatalogChangedEvent{
			Source:  w.path,
			Created: res.Created,
			Updated: res.Updated,
			Removed: res.Removed,
		})
	}
	return res, nil
}
