// Package watch recompiles content when files under the content root change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const defaultDebounce = 300 * time.Millisecond

// ErrRootRequired indicates a watcher without a directory to watch.
var ErrRootRequired = errors.New("watch: root directory is required")

// RebuildFunc runs after a burst of changes settles.
type RebuildFunc func(ctx context.Context) error

// Config configures a Watcher.
type Config struct {
	Root     string
	Debounce time.Duration
}

// Watcher watches Root and every directory below it.
type Watcher struct {
	cfg     Config
	rebuild RebuildFunc
	logger  interfaces.Logger
}

// New returns a watcher that calls rebuild after changes.
func New(cfg Config, rebuild RebuildFunc, logger interfaces.Logger) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, ErrRootRequired
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	return &Watcher{cfg: cfg, rebuild: rebuild, logger: logging.Ensure(logger)}, nil
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.cfg.Root); err != nil {
		return err
	}
	w.logger.Info("watch.started", "root", w.cfg.Root, "debounce", w.cfg.Debounce)

	return w.loop(ctx, watcher.Events, watcher.Errors, func(dir string) {
		if err := w.addTree(watcher, dir); err != nil {
			w.logger.Warn("watch.add_failed", "path", dir, "error", err)
		}
	})
}

// loop debounces events and runs rebuilds one at a time.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, addDir func(string)) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
		changes int
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("watch.change", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isDir(event.Name) && addDir != nil {
				addDir(event.Name)
			}
			changes++
			stop()
			timer = time.NewTimer(w.cfg.Debounce)
			pending = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "error", err)
		case <-pending:
			pending = nil
			w.logger.Info("watch.rebuild", "changes", changes)
			changes = 0
			if w.rebuild == nil {
				continue
			}
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("watch.rebuild_failed", "error", err)
			}
		}
	}
}

func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("watch.walk_failed", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			w.logger.Warn("watch.add_failed", "path", path, "error", err)
		}
		return nil
	})
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
