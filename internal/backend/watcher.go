package backend

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tagmaster/internal/filetree"
	"github.com/atomicstack/tagmaster/internal/logging"
	"github.com/atomicstack/tagmaster/internal/logging/events"
)

// Event carries a fresh listing of Root, or the error that prevented it.
type Event struct {
	Root     string
	Snapshot filetree.Snapshot
	Err      error
}

// Watcher lists a project root and re-lists it when the filesystem reports
// a change, or every interval when interval is positive.
type Watcher struct {
	root     string
	interval time.Duration
	settle   time.Duration
	list     func(string) (filetree.Snapshot, error)

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching root.
func NewWatcher(root string, interval time.Duration) *Watcher {
	return newWatcher(root, interval, 250*time.Millisecond, filetree.List)
}

func newWatcher(root string, interval, settle time.Duration, list func(string) (filetree.Snapshot, error)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		root:     root,
		interval: interval,
		settle:   settle,
		list:     list,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Error(err)
		fsw = nil
	} else if err := fsw.Add(root); err != nil {
		logging.Error(err)
		_ = fsw.Close()
		fsw = nil
	}

	w.wg.Add(1)
	go w.run(fsw)

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Root is the directory this watcher lists.
func (w *Watcher) Root() string {
	return w.root
}

// Events returns a channel of listings. It closes after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The goroutine exits after its current listing.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and Events is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	gate := newSettleGate(w.settle)

	emit := func(reason string) bool {
		if !gate.wait(w.ctx) {
			return false
		}
		snap, err := w.list(w.root)
		events.Tree.List(w.root, reason, len(snap.Entries), err)
		evt := Event{Root: w.root, Snapshot: snap, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit("initial") {
		if fsw != nil {
			_ = fsw.Close()
		}
		return
	}

	var changes <-chan fsnotify.Event
	var failures <-chan error
	if fsw != nil {
		defer fsw.Close()
		changes = fsw.Events
		failures = fsw.Errors
	}

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			if change.Op == fsnotify.Chmod {
				continue
			}
			drain(changes)
			if !emit(change.Op.String()) {
				return
			}
		case err, ok := <-failures:
			if !ok {
				failures = nil
				continue
			}
			logging.Error(err)
		case <-tick:
			if !emit("interval") {
				return
			}
		}
	}
}

// drain discards changes already queued so a burst triggers one listing.
func drain(changes <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
