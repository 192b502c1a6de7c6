package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/scape/internal/logger"
)

// FileWatcher requests a reload when the bookmark export changes on disk.
// Browsers and editors often replace the file instead of writing it in
// place, so the parent directory is watched and events are filtered by name.
type FileWatcher struct {
	path    string
	settle  time.Duration
	trigger chan<- struct{}
	logger  logger.Logger

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
	stopCh  chan struct{}
	once    sync.Once

	mu    sync.Mutex
	timer *time.Timer
	last  fileState
}

type fileState struct {
	size    int64
	modTime time.Time
}

// NewFileWatcher creates a watcher for path. Changes are reported on
// trigger once the file has stopped changing for settle.
func NewFileWatcher(path string, settle time.Duration, trigger chan<- struct{}, log logger.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		path:    filepath.Clean(path),
		settle:  settle,
		trigger: trigger,
		logger:  log.With(logger.String("component", "watcher")),
		watcher: w,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the watch is registered.
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fw.logger.Info("watching bookmark export", logger.String("path", fw.path))

	fw.wg.Add(1)
	go fw.run(ctx)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (fw *FileWatcher) Stop() {
	fw.once.Do(func() {
		close(fw.stopCh)
		_ = fw.watcher.Close()
		fw.wg.Wait()

		fw.mu.Lock()
		if fw.timer != nil {
			fw.timer.Stop()
		}
		fw.mu.Unlock()
	})
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer fw.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", logger.Error(err))
		}
	}
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	fw.logger.Debug("bookmark export changed", logger.String("op", event.Op.String()))

	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.last = fw.stat()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.settle, fw.checkSettled)
}

// checkSettled fires the trigger once size and mtime stop moving.
func (fw *FileWatcher) checkSettled() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	current := fw.stat()
	if current != fw.last {
		fw.last = current
		fw.timer = time.AfterFunc(fw.settle, fw.checkSettled)
		return
	}
	fw.timer = nil

	// A rename away leaves nothing to load until the new file shows up
	if current == (fileState{}) {
		return
	}

	select {
	case fw.trigger <- struct{}{}:
		fw.logger.Info("bookmark export settled, reload requested")
	default:
		fw.logger.Debug("reload already pending")
	}
}

func (fw *FileWatcher) stat() fileState {
	info, err := os.Stat(fw.path)
	if err != nil {
		return fileState{}
	}
	return fileState{size: info.Size(), modTime: info.ModTime()}
}
