package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/angelmondragon/shobi-backend/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the holder when the catalog file changes on disk.
type Watcher struct {
	path     string
	holder   *Holder
	debounce time.Duration
	logg     *logger.Logger
	fs       *fsnotify.Watcher
}

// NewWatcher watches the parent directory of path so that editors replacing
// the file by rename still trigger a reload.
func NewWatcher(path string, holder *Holder, debounce time.Duration, logg *logger.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{path: abs, holder: holder, debounce: debounce, logg: logg, fs: fs}, nil
}

// Run blocks until ctx is done, coalescing bursts of events into one reload.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.logg != nil {
				w.logg.Error(ctx, "catalog watcher error", err)
			}
		case <-fire:
			fire = nil
			if w.logg != nil {
				w.logg.Info(w.logg.WithField(ctx, "path", w.path), "catalog file changed; reloading")
			}
			// Holder.Load logs failures and keeps the previous snapshot.
			_ = w.holder.Load(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
