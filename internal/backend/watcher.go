package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/drilldown-menu/internal/logging/events"
	"github.com/atomicstack/drilldown-menu/internal/markup"
	"github.com/fsnotify/fsnotify"
)

// Event carries a freshly loaded menu document or the error that prevented
// loading it.
type Event struct {
	Path     string
	Document *markup.Document
	Err      error
}

// Watcher observes a menu file and publishes a reloaded document after every
// change. Reloads are throttled so an editor's burst of writes produces at
// most one load per interval.
type Watcher struct {
	path     string
	interval time.Duration
	fsw      *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The containing directory is watched so
// files replaced by rename (as most editors save) keep being observed.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve menu file: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		fsw:      fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		fsw.Close()
		close(w.events)
	}()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The events channel is closed once the watch loop
// exits.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	throttle := newThrottle(w.interval)

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			events.Watch.Change(ev.Name, ev.Op.String())
			throttle.wait()
			if !w.emit(w.load()) {
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			events.Watch.Error(w.path, err)
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) load() Event {
	doc, err := markup.Load(w.path)
	if err != nil {
		events.Watch.Error(w.path, err)
		return Event{Path: w.path, Err: err}
	}
	events.Watch.Reload(w.path, len(doc.Menus))
	return Event{Path: w.path, Document: doc}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
