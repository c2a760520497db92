package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spectra-health/spectra/internal/logger"
)

// reloadDelay coalesces the burst of events editors produce on save
const reloadDelay = 100 * time.Millisecond

// Watch reloads path whenever it changes and hands each valid result to fn.
// Edits that fail to parse are logged and skipped. Watch blocks until ctx
// is cancelled.
func Watch(ctx context.Context, path string, log *logger.Logger, fn func(*Page)) error {
	if log == nil {
		log = logger.Nop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Warn("failed to close watcher: %v", err)
		}
	}()

	// Watch the directory so editors that replace the file are still seen
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	log.Info("watching content file %s", target)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.After(reloadDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error: %v", err)

		case <-pending:
			pending = nil
			page, err := Load(path)
			if err != nil {
				log.WarnWithFields("content reload skipped", []logger.Field{logger.Error(err)})
				continue
			}
			log.Info("content reloaded")
			fn(page)
		}
	}
}
