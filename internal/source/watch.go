package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

type watchSource struct {
	dir    string
	logger logger.Logger
}

// NewWatch creates a Source that monitors a directory into which an
// STT sidecar drops fragment batches as .json files (each file a JSON
// array of fragments). Files are ingested on creation and removed
// afterwards so a restarted session does not re-ingest them.
func NewWatch(dir string, log logger.Logger) Source {
	return &watchSource{
		dir:    dir,
		logger: log.WithName("watch"),
	}
}

func (w *watchSource) Stream(ctx context.Context, handler Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("add watch path: %w", err)
	}

	w.logger.Info(ctx, "Watching %s for fragment batches", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isBatchFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-batch file: %s", event.Name)
				continue
			}

			// Small delay to ensure the file is fully written
			time.Sleep(200 * time.Millisecond)

			if err := w.ingestBatch(ctx, event.Name, handler); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.logger.Error(ctx, "Failed to ingest %s: %v", event.Name, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *watchSource) ingestBatch(ctx context.Context, path string, handler Handler) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	var fragments []store.Fragment
	if err := json.Unmarshal(data, &fragments); err != nil {
		return fmt.Errorf("parse batch: %w", err)
	}

	w.logger.Info(ctx, "Ingesting %d fragments from %s", len(fragments), path)

	for i, frag := range fragments {
		if err := handler(ctx, frag); err != nil {
			return fmt.Errorf("handle fragment %d: %w", i, err)
		}
	}

	if err := os.Remove(path); err != nil {
		w.logger.Warn(ctx, "Failed to remove ingested batch %s: %v", path, err)
	}

	return nil
}

func isBatchFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.ToLower(filepath.Ext(name)) == ".json"
}
