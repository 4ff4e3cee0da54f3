package watch

import (
	"sync"
	"time"
)

// debouncer batches events keyed by path, flushing the latest EventType per
// path after a quiet period. Grounded on the teacher's eventDebouncer
// (internal/indexing/watcher.go), generalized to call an injected flush
// function instead of a fixed set of FileWatcher callbacks.
type debouncer struct {
	mu     sync.Mutex
	events map[string]EventType
	delay  time.Duration
	timer  *time.Timer
	flush  func(events map[string]EventType)
}

func newDebouncer(delay time.Duration, flush func(events map[string]EventType)) *debouncer {
	return &debouncer{
		events: make(map[string]EventType),
		delay:  delay,
		flush:  flush,
	}
}

func (d *debouncer) add(path string, eventType EventType) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.events[path] = eventType
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.runFlush)
}

func (d *debouncer) runFlush() {
	d.mu.Lock()
	events := d.events
	d.events = make(map[string]EventType)
	d.mu.Unlock()

	d.flush(events)
}
