// Package watch re-runs generation when documentation sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// ErrNoWatchableRoots indicates no local root directory exists to watch.
var ErrNoWatchableRoots = errors.New("no watchable root directories")

// Watcher observes local documentation roots and invokes a rebuild callback
// after changes settle.
type Watcher struct {
	roots    []string
	rebuild  func(context.Context) error
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New creates a watcher over the given root directories. Roots that do not
// exist are skipped; at least one must exist.
func New(roots []string, rebuild func(context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		roots:    roots,
		rebuild:  rebuild,
		debounce: 2 * time.Second,
		fsw:      fsw,
	}

	watched := 0
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			slog.Warn("Watch root not found, skipping", logfields.Root(root))
			continue
		}
		if err := w.addRecursive(root); err != nil {
			fsw.Close()
			return nil, err
		}
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return nil, ErrNoWatchableRoots
	}

	return w, nil
}

// addRecursive registers dir and every non-hidden subdirectory.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run blocks handling events until ctx is cancelled. Change bursts are
// debounced: the rebuild fires once the sources have been quiet for the
// debounce interval.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	slog.Info("Watching documentation roots", logfields.Count(len(w.roots)))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories must be registered before their contents
			// produce events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						slog.Warn("Failed to watch new directory",
							logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			slog.Debug("Source change detected", logfields.Path(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// relevant filters out noise: hidden files and events on non-source files
// still trigger no rebuild.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	return true
}
