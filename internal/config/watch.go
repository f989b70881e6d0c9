package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange whenever one of the candidate settings files is
// written, created, renamed or removed. The parent directories are watched
// rather than the files, because editors commonly save by renaming a temp
// file over the original. A parent directory that does not exist yet is
// covered through its nearest existing ancestor until it is created. Bursts
// of events within debounce collapse into one call. Watch blocks until ctx
// is done.
func Watch(ctx context.Context, paths []string, debounce time.Duration, logger *slog.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	wanted := make(map[string]bool, len(paths))
	pending := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		wanted[abs] = true
		pending[filepath.Dir(abs)] = true
	}
	watched := make(map[string]bool)
	settle := func() bool {
		appeared := false
		for dir := range pending {
			if !watchNearest(w, dir, watched) {
				continue
			}
			delete(pending, dir)
			for f := range wanted {
				if filepath.Dir(f) != dir {
					continue
				}
				if _, err := os.Stat(f); err == nil {
					appeared = true
				}
			}
		}
		return appeared
	}
	settle()
	for dir := range pending {
		logger.Debug("config_watch_dir_missing", slog.String("dir", dir))
	}

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		}
		fire = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if len(pending) > 0 && ev.Has(fsnotify.Create) && settle() {
				logger.Debug("config_dir_created", slog.String("path", name))
				schedule()
				continue
			}
			if !wanted[name] {
				continue
			}
			logger.Debug("config_file_event", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			schedule()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config_watch_error", slog.String("error", err.Error()))
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// watchNearest watches dir, or its closest existing ancestor when dir is
// missing. It reports whether dir itself is now watched.
func watchNearest(w *fsnotify.Watcher, dir string, watched map[string]bool) bool {
	for d := dir; ; {
		if watched[d] {
			return d == dir
		}
		if err := w.Add(d); err == nil {
			watched[d] = true
			return d == dir
		}
		parent := filepath.Dir(d)
		if parent == d {
			return false
		}
		d = parent
	}
}
