package catalog

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FileWatcher polls the catalog file's modification time and reloads it into
// a Store on change. A file that fails to load leaves the previous catalog in place.
type FileWatcher struct {
	Path      string
	Interval  time.Duration
	store     *Store
	logger    *zap.Logger
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime time.Time
	primed    bool
}

// NewFileWatcher creates a watcher for path that reloads into store.
func NewFileWatcher(path string, interval time.Duration, store *Store, logger *zap.Logger) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &FileWatcher{
		Path:     path,
		Interval: interval,
		store:    store,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins polling in a goroutine.
func (w *FileWatcher) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		// prime mtime
		w.scan()
		for {
			select {
			case <-ticker.C:
				w.scan()
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Later calls are no-ops.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scan reloads the file if its mtime moved forward since the last scan.
// It reports whether a reload happened.
func (w *FileWatcher) scan() bool {
	fi, err := os.Stat(w.Path)
	if err != nil {
		// missing file: keep serving the old catalog
		return false
	}
	mt := fi.ModTime()
	if !w.primed {
		w.primed = true
		w.lastMTime = mt
		return false
	}
	if !mt.After(w.lastMTime) {
		return false
	}
	w.lastMTime = mt

	cat, err := LoadFile(w.Path)
	if err != nil {
		w.logger.Warn("catalog reload failed", zap.String("path", w.Path), zap.Error(err))
		return false
	}
	w.store.Replace(cat)
	w.logger.Info("catalog reloaded",
		zap.String("path", w.Path),
		zap.Int("species", len(cat)),
		zap.Int("eligible", cat.EligibleCount()))
	return true
}
