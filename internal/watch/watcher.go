// Package watch re-runs work when scenario or sensitivity files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Logger receives watcher diagnostics
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{}) {}

// ChangeFunc is called once per settled batch of changes with the paths that changed
type ChangeFunc func(ctx context.Context, paths []string)

// Stats counts watcher activity
type Stats struct {
	Events    int
	Triggers  int
	Errors    int
	LastPath  string
	LastEvent time.Time
}

// FileWatcher watches a fixed set of files. It watches their parent directories so
// editors that save by rename are still seen.
type FileWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	files       map[string]bool
	pending     map[string]time.Time
	debounceDur time.Duration
	onChange    ChangeFunc
	logger      Logger
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
}

// NewFileWatcher creates a watcher for files. debounce is how long a file must be quiet
// before onChange fires.
func NewFileWatcher(files []string, debounce time.Duration, onChange ChangeFunc) (*FileWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if onChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:     watcher,
		files:       make(map[string]bool, len(files)),
		pending:     make(map[string]time.Time),
		debounceDur: debounce,
		onChange:    onChange,
		logger:      nopLogger{},
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return fw, nil
}

// SetLogger replaces the diagnostics logger
func (fw *FileWatcher) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	fw.logger = l
}

// Start begins watching in a background goroutine
func (fw *FileWatcher) Start(ctx context.Context) {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return
	}
	fw.running = true
	fw.mu.Unlock()

	go fw.run(ctx)
}

// Stop ends the watch loop, waits for it to exit and releases the OS watcher.
// It is safe to call Stop after the context passed to Start was cancelled.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	wasRunning := fw.running
	fw.running = false
	fw.mu.Unlock()

	if wasRunning {
		close(fw.stopCh)
		<-fw.doneCh
	}
	return fw.watcher.Close()
}

// Stats returns a snapshot of watcher activity
func (fw *FileWatcher) Stats() Stats {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.stats
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	tick := fw.debounceDur / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

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
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Errorf("watch error: %v", err)
			fw.mu.Lock()
			fw.stats.Errors++
			fw.mu.Unlock()
		case <-ticker.C:
			fw.flush(ctx)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	path, err := filepath.Abs(event.Name)
	if err != nil || !fw.files[path] {
		return
	}

	fw.logger.Debugf("%s: %s", event.Op, path)

	fw.mu.Lock()
	fw.pending[path] = time.Now()
	fw.stats.Events++
	fw.stats.LastPath = path
	fw.stats.LastEvent = time.Now()
	fw.mu.Unlock()
}

// flush fires the callback for files that have been quiet for the debounce window
func (fw *FileWatcher) flush(ctx context.Context) {
	fw.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range fw.pending {
		if now.Sub(at) >= fw.debounceDur {
			settled = append(settled, path)
			delete(fw.pending, path)
		}
	}
	if len(settled) > 0 {
		fw.stats.Triggers++
	}
	fw.mu.Unlock()

	if len(settled) > 0 {
		fw.onChange(ctx, settled)
	}
}
