package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc is called with the result of every reload.
type ReloadFunc func(Config, error)

// Watch blocks until ctx is done, reloading the file at path with opts
// whenever it is written, created or renamed into place. The containing
// directory is watched so atomic-rename saves are seen. onReload runs on
// the watcher goroutine.
func Watch(ctx context.Context, path string, onReload ReloadFunc, opts ...Option) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	opts = append([]Option{WithFile(abs)}, opts...)
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

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
			timer.Reset(DefaultDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onReload(Config{}, err)

		case <-timer.C:
			onReload(Load(opts...))
		}
	}
}
