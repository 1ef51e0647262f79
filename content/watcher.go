package content

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors produce on save
const reloadDebounce = 200 * time.Millisecond

// Watch observes the content file at path and calls onChange with the freshly loaded script
// after every settled modification, until ctx is cancelled.
//
// The parent directory is watched rather than the file, so editors that save by writing a
// temporary file and renaming it over the original keep being followed. A change that fails
// to load is logged and skipped; the previous script stays in effect.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(*Content)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("content watcher: started", "path", abs)

	var debounce *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			logger.Info("content watcher: stopped")
			return nil

		case <-debounceCh:
			debounceCh = nil
			c, err := Load(abs)
			if err != nil {
				logger.Warn("content watcher: reload failed", "path", abs, "err", err)
				continue
			}
			logger.Info("content watcher: reloaded", "path", abs)
			onChange(c)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
			} else {
				debounce.Reset(reloadDebounce)
			}
			debounceCh = debounce.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("content watcher: error", "err", err)
		}
	}
}
