// SPDX-License-Identifier: MPL-2.0

// Package watch rebuilds on source changes.
//
// A Watcher registers every directory below a root with fsnotify and calls
// OnChange once per burst of events, after a quiet period, with the changed
// paths relative to the root.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces editor write-then-rename sequences into one run.
const DefaultDebounce = 500 * time.Millisecond

// ErrAlreadyStarted is returned by a second call to Run.
var ErrAlreadyStarted = errors.New("watcher already started")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Root is the directory watched recursively.
		Root string
		// Skip lists directories (relative to Root) that are never watched,
		// typically build output. ".git" is always skipped.
		Skip []string
		// Match selects the files whose changes trigger OnChange. A nil
		// Match accepts every file.
		Match func(rel string) bool
		// Debounce is the quiet period after the last event. Zero or
		// negative values mean DefaultDebounce.
		Debounce time.Duration
		// OnChange receives the sorted, de-duplicated changed paths. It is
		// never called concurrently with itself.
		OnChange func(ctx context.Context, changed []string) error
		Logger   *log.Logger
	}

	// Watcher monitors Root. Run must be called exactly once.
	Watcher struct {
		cfg     Config
		fsw     *fsnotify.Watcher
		root    string
		skip    map[string]bool
		logger  *log.Logger
		started atomic.Bool
	}
)

// New resolves Root and registers its directory tree.
func New(cfg Config) (*Watcher, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}
	if !isDir(root) {
		return nil, fmt.Errorf("watch: %s is not a directory", root)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	skip := map[string]bool{".git": true}
	for _, s := range cfg.Skip {
		rel := s
		if filepath.IsAbs(s) {
			if rel, err = filepath.Rel(root, s); err != nil {
				continue
			}
		}
		skip[filepath.Clean(rel)] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{cfg: cfg, fsw: fsw, root: root, skip: skip, logger: logger}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is canceled. It returns nil on
// cancellation and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]bool)
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		// A slow build must not overlap the next one; retry after it.
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			timer.Reset(w.cfg.Debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 {
			return
		}
		sort.Strings(changed)

		w.logger.Info("change detected", "files", len(changed), "first", changed[0])
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("rebuild failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close watcher", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			rel, err := filepath.Rel(w.root, evt.Name)
			if err != nil || w.skipped(rel) {
				continue
			}
			if evt.Has(fsnotify.Create) && isDir(evt.Name) {
				if err := w.addTree(evt.Name); err != nil {
					w.logger.Warn("watch new directory", "path", rel, "error", err)
				}
				continue
			}
			if w.cfg.Match != nil && !w.cfg.Match(filepath.ToSlash(rel)) {
				continue
			}

			mu.Lock()
			pending[filepath.ToSlash(rel)] = true
			if timer == nil {
				timer = time.AfterFunc(w.cfg.Debounce, fire)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: %w", err)
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// addTree registers dir and every directory below it that is not skipped.
// Unreadable directories are logged and left out.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		if w.skipped(rel) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// skipped reports whether rel is inside a skipped directory.
func (w *Watcher) skipped(rel string) bool {
	for p := filepath.Clean(rel); p != "."; p = filepath.Dir(p) {
		if w.skip[p] {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
