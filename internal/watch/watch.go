// Package watch re-runs a callback whenever a file is written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must stay unchanged before the callback runs.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes of a single file. Several writes in quick
// succession are reported once.
type Watcher struct {
	Debounce time.Duration

	path     string
	logger   *zap.Logger
	onChange func(path string)
}

func New(path string, logger *zap.Logger, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		Debounce: DefaultDebounce,
		path:     abs,
		logger:   logger,
		onChange: onChange,
	}, nil
}

func (w *Watcher) Path() string { return w.path }

// Run watches until ctx is done. The parent directory is watched rather than
// the file itself so that editors replacing the file are still noticed.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	w.logger.Debug("Watching file", zap.String("file", w.path))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.onChange(w.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Error watching file", zap.String("file", w.path), zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create
}
