// Package watch turns file-system events into Coordinator update calls. It
// is the live counterpart to a one-shot directory scan: a created or
// modified file is re-indexed and fed to UpdateFileIndex, a removed file is
// deregistered. Modeled on the teacher's internal/indexing FileWatcher, with
// its onFileChanged/onFileCreated/onFileRemoved callback seams repurposed to
// call into a Coordinator rather than an indexer queue.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/CRJFisher/ariadne/internal/coordinatorlog"
	"github.com/CRJFisher/ariadne/internal/resolveconfig"
)

// EventType mirrors fsnotify's operations at the granularity the Coordinator
// cares about: a file either now needs indexing, or no longer exists.
type EventType int

const (
	EventChanged EventType = iota
	EventRemoved
)

// Indexer is the subset of the indexing pipeline a Watcher needs: given a
// path, detect its language and produce a SemanticIndex, then hand both to
// the Coordinator. Left abstract so internal/watch never depends on a
// specific parser/indexer package.
type Indexer interface {
	IndexFile(path string) error
	RemoveFile(path string) error
}

// Watcher watches a project tree and debounces raw fsnotify events into
// batched Indexer calls, the same two-stage (watcher goroutine + debouncer
// goroutine) shape as the teacher's FileWatcher/eventDebouncer pair.
type Watcher struct {
	fs        *fsnotify.Watcher
	cfg       *resolveconfig.Config
	indexer   Indexer
	debouncer *debouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	statsMu         sync.RWMutex
	eventsProcessed int64
	errorCount      int64
	lastEventTime   time.Time
}

// Stats reports cumulative watch-mode activity, mirroring the teacher's
// WatchStats.
type Stats struct {
	EventsProcessed int64
	ErrorCount      int64
	LastEventTime   time.Time
	IsActive        bool
}

// New constructs a Watcher for cfg's project root, debouncing events by
// cfg.Watch.DebounceMs before forwarding them to indexer.
func New(cfg *resolveconfig.Config, indexer Indexer) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fs:      fsWatcher,
		cfg:     cfg,
		indexer: indexer,
		ctx:     ctx,
		cancel:  cancel,
	}
	w.debouncer = newDebouncer(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, w.flush)
	return w, nil
}

// Start adds recursive watches under cfg.Project.Root and begins processing
// events. A no-op if cfg.Watch.Enabled is false.
func (w *Watcher) Start() error {
	if !w.cfg.Watch.Enabled {
		coordinatorlog.Default.Infof("watch mode disabled in configuration")
		return nil
	}
	if err := w.addWatches(w.cfg.Project.Root); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop cancels event processing, closes the underlying fsnotify watcher and
// waits for its goroutine to exit. Any events still pending in the
// debouncer at shutdown are dropped, matching the teacher's rationale:
// flushing during shutdown risks deadlocking on a Coordinator lock already
// held by the teardown sequence.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fs.Close()
	w.wg.Wait()

	w.debouncer.mu.Lock()
	if w.debouncer.timer != nil {
		w.debouncer.timer.Stop()
	}
	w.debouncer.events = make(map[string]EventType)
	w.debouncer.mu.Unlock()
	return err
}

func (w *Watcher) addWatches(root string) error {
	visited := make(map[string]bool)
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		real, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visited[real] {
			return filepath.SkipDir
		}
		visited[real] = true

		if w.shouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			coordinatorlog.Default.Warnf("failed to add watch for %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) shouldIgnoreDir(path string) bool {
	rel, err := filepath.Rel(w.cfg.Project.Root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.cfg.Exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) shouldProcessPath(path string) bool {
	if len(w.cfg.Include) == 0 {
		return true
	}
	rel, err := filepath.Rel(w.cfg.Project.Root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.cfg.Include {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			coordinatorlog.Default.Warnf("fsnotify error: %v", err)
			w.incrementStats(0, 1)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	info, err := os.Stat(path)
	if err != nil {
		if event.Op&fsnotify.Remove != 0 && w.shouldProcessPath(path) {
			w.debouncer.add(path, EventRemoved)
		}
		return
	}

	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 && !w.shouldIgnoreDir(path) {
			if err := w.fs.Add(path); err != nil {
				coordinatorlog.Default.Warnf("failed to add watch for new directory %s: %v", path, err)
			}
		}
		return
	}

	if !w.shouldProcessPath(path) {
		return
	}

	switch {
	case event.Op&fsnotify.Remove != 0:
		w.debouncer.add(path, EventRemoved)
	case event.Op&fsnotify.Create != 0, event.Op&fsnotify.Write != 0, event.Op&fsnotify.Rename != 0:
		w.debouncer.add(path, EventChanged)
	}
}

// flush is the debouncer's callback: it applies every accumulated event to
// the Indexer, removals first so a rename-as-remove-then-create settles
// cleanly.
func (w *Watcher) flush(events map[string]EventType) {
	if len(events) == 0 {
		return
	}
	coordinatorlog.Default.Debugf("processing %d debounced file events", len(events))

	var removals, changes []string
	for path, eventType := range events {
		if eventType == EventRemoved {
			removals = append(removals, path)
		} else {
			changes = append(changes, path)
		}
	}

	for _, path := range removals {
		if err := w.indexer.RemoveFile(path); err != nil {
			coordinatorlog.Default.Warnf("remove %s failed: %v", path, err)
			w.incrementStats(0, 1)
			continue
		}
		w.incrementStats(1, 0)
	}
	for _, path := range changes {
		if err := w.indexer.IndexFile(path); err != nil {
			coordinatorlog.Default.Warnf("index %s failed: %v", path, err)
			w.incrementStats(0, 1)
			continue
		}
		w.incrementStats(1, 0)
	}
}

func (w *Watcher) incrementStats(events, errors int64) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.eventsProcessed += events
	w.errorCount += errors
	w.lastEventTime = time.Now()
}

// Stats returns a snapshot of cumulative watch-mode activity.
func (w *Watcher) Stats() Stats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	return Stats{
		EventsProcessed: w.eventsProcessed,
		ErrorCount:      w.errorCount,
		LastEventTime:   w.lastEventTime,
		IsActive:        w.ctx.Err() == nil,
	}
}
