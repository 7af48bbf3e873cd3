// Package watcher feeds filesystem events for coverage reports into a
// rebuild trigger.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// skipDirs mirrors the discovery walker: dependency and metadata trees
// are neither watched nor descended into.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	".git":         {},
}

// Watcher watches a workspace tree and calls trigger whenever a file
// matching one of the report patterns is created, changed or removed.
// fsnotify watches are per-directory and non-recursive, so the whole
// tree is walked up front and newly created directories are added as
// they appear.
type Watcher struct {
	root    string
	globs   []string
	trigger func()
	log     *slog.Logger
	fsw     *fsnotify.Watcher
}

func New(root string, globs []string, trigger func(), log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:    filepath.Clean(root),
		globs:   globs,
		trigger: trigger,
		log:     log,
		fsw:     fsw,
	}
	if err := w.watchTree(w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if _, skip := skipDirs[d.Name()]; skip && path != w.root {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Debug("cannot watch directory", "dir", path, "error", err)
		}
		return nil
	})
}

// Run pumps events until the context is cancelled. It always returns
// the context's error; watcher-internal errors are logged and survived.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return ctx.Err()
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ctx.Err()
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		w.maybeWatchNewDir(event.Name)
	}
	if w.matches(event.Name) {
		w.log.Debug("report event", "file", event.Name, "op", event.Op.String())
		w.trigger()
	}
}

func (w *Watcher) maybeWatchNewDir(path string) {
	if _, skip := skipDirs[filepath.Base(path)]; skip {
		return
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if err := w.watchTree(path); err != nil {
			w.log.Debug("cannot watch new directory", "dir", path, "error", err)
		}
	}
}

// matches reports whether path, relative to the root, matches any of
// the report patterns.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.globs {
		if doublestar.MatchUnvalidated(filepath.ToSlash(pattern), rel) {
			return true
		}
	}
	return false
}
