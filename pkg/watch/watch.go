// Package watch re-runs a callback after bursts of changes below a source
// tree. It is a maintainer tool: editing the templates in the source tree
// refreshes a target project without re-running init by hand.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/rules"
)

// DefaultDebounce is the quiet period that ends a burst
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called once per burst with the source-relative,
// slash-separated paths that changed. An error is logged and watching
// continues.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches the directories of a source tree recursively
type Watcher struct {
	Root     string
	Ignore   rules.Ignore
	Debounce time.Duration
	OnChange ChangeFunc

	fsw *fsnotify.Watcher
}

// New creates a watcher for root. Close it, or let Run return, to release
// the underlying notifier.
func New(root string, ignore rules.Ignore, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{Root: root, Ignore: ignore, Debounce: debounce, OnChange: onChange, fsw: fsw}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers bursts to OnChange until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.GetLogger("watch")
	defer func() { _ = w.fsw.Close() }()

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			rel, keep := w.relevant(event.Name)
			if !keep {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						logger.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch new directory")
					}
				}
			}
			logger.Trace().Str("path", rel).Str("op", event.Op.String()).Msg("Change")
			pending[rel] = true
			timer.Reset(w.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Watcher error")

		case <-timer.C:
			changed := sortedKeys(pending)
			pending = make(map[string]bool)
			logger.Info().Int("changes", len(changed)).Msg("Source tree changed")
			if w.OnChange == nil {
				continue
			}
			if err := w.OnChange(ctx, changed); err != nil {
				logger.Error().Err(err).Msg("Change handler failed")
			}
		}
	}
}

// Close releases the notifier without running
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// relevant maps an event path to a source-relative path and reports
// whether it is outside the ignore list
func (w *Watcher) relevant(name string) (string, bool) {
	rel, err := filepath.Rel(w.Root, name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || w.Ignore.Match(rel) {
		return rel, false
	}
	return rel, true
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.Root {
			if _, keep := w.relevant(p); !keep {
				return filepath.SkipDir
			}
		}
		if err := w.fsw.Add(p); err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to watch %s", p)
		}
		return nil
	})
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
