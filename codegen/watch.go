package codegen

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the event bursts editors produce on save.
const DefaultDebounce = 250 * time.Millisecond

// Watch runs generation, then reruns it whenever a relevant source file
// changes under the configured package directories. It blocks until ctx is
// canceled. Generation errors are logged and watching continues; only
// watcher setup failures are fatal.
func Watch(ctx context.Context, opts Options, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watchDirs := func() {
		dirs, err := DiscoverPackages(opts.Root, opts.Packages)
		if err != nil {
			logger.Error("failed to discover packages", "error", err)
			return
		}
		for _, dir := range dirs {
			if err := w.Add(filepath.Join(opts.Root, dir)); err != nil {
				logger.Error("failed to watch directory", "dir", dir, "error", err)
			}
		}
	}

	run := func() {
		if _, err := Run(opts); err != nil {
			logger.Error("generation failed", "error", err)
		}
		// Pick up directories created since the last pass.
		watchDirs()
	}

	run()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						logger.Error("failed to watch directory", "dir", ev.Name, "error", err)
					}
					continue
				}
			}
			if !relevantChange(ev.Name) {
				continue
			}
			logger.Debug("source changed", "path", ev.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			run()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// relevantChange reports whether a changed path can affect generation.
// Generated output is excluded, otherwise every run would trigger the next.
func relevantChange(path string) bool {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".go") {
		return false
	}
	if strings.HasPrefix(name, "zz_generated") {
		return false
	}
	return !strings.HasSuffix(name, "_test.go")
}
