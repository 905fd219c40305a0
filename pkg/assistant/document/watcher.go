package document

import (
	"context"
	"fmt"
	"path/filepath"

	"support-assistant-be/internal/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the document whenever its file is written or recreated.
// The parent directory is watched so editors that replace the file by
// rename are picked up too.
type Watcher struct {
	path    string
	store   *Store
	log     logger.ILogger
	watcher *fsnotify.Watcher
}

func NewWatcher(path string, store *Store, log logger.ILogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve document path: %w", err)
	}
	fileWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		path:    abs,
		store:   store,
		log:     log,
		watcher: fileWatcher,
	}, nil
}

// Start blocks until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch path %s: %w", dir, err)
	}
	w.log.Info("DocumentWatcher", "Document watcher started", map[string]interface{}{"path": w.path})

	for {
		select {
		case <-ctx.Done():
			w.log.Info("DocumentWatcher", "Document watcher stopped", nil)
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("DocumentWatcher", "File watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	// errors are logged by the store; the previous content stays loaded
	_ = w.store.LoadFile(w.path)
}
