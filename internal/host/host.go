// Package host is the in-terminal windowing layer. It hands out window
// handles, keeps the stacking order and focus, and reports lifecycle events
// on a channel that the UI drains like any other backend feed.
package host

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Handle identifies a window owned by the host.
type Handle uuid.UUID

// Nil is the zero handle; it never identifies a window.
var Nil Handle

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Short returns the first block of the handle for compact display.
func (h Handle) Short() string {
	s := h.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// Sizing is the policy a window is opened with.
type Sizing struct {
	Title  string
	Width  int
	Height int
	Fill   bool
}

// EventKind enumerates window lifecycle notifications.
type EventKind int

const (
	EventOpened EventKind = iota
	EventCloseRequested
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventCloseRequested:
		return "close-requested"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is a window lifecycle notification.
type Event struct {
	Kind   EventKind
	Handle Handle
}

// Host is what the coordinator needs from a windowing layer.
type Host interface {
	Open(ctx context.Context, sizing Sizing) (Handle, error)
	Close(h Handle)
	Events() <-chan Event
}

// ErrStopped is returned by Open after Stop.
var ErrStopped = errors.New("host: stopped")

// Window is a snapshot of an open window.
type Window struct {
	Handle Handle
	Sizing Sizing
}

// Manager is the terminal implementation of Host. Open may be called from
// command goroutines; everything else is safe from any goroutine too.
type Manager struct {
	mu      sync.Mutex
	windows map[Handle]Sizing
	order   []Handle
	focused Handle
	stopped bool

	events chan Event
	newID  func() uuid.UUID
}

// NewManager returns an empty window manager.
func NewManager() *Manager {
	return &Manager{
		windows: make(map[Handle]Sizing),
		events:  make(chan Event, 32),
		newID:   uuid.New,
	}
}

// Events returns the lifecycle feed.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// Open creates a window, focuses it and returns its handle.
func (m *Manager) Open(ctx context.Context, sizing Sizing) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Nil, err
	}
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return Nil, ErrStopped
	}
	h := Handle(m.newID())
	m.windows[h] = sizing
	m.order = append(m.order, h)
	m.focused = h
	m.mu.Unlock()
	m.emit(Event{Kind: EventOpened, Handle: h})
	return h, nil
}

// Close destroys a window. Unknown handles are ignored.
func (m *Manager) Close(h Handle) {
	m.mu.Lock()
	if _, ok := m.windows[h]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.windows, h)
	for i, candidate := range m.order {
		if candidate == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.focused == h {
		m.focused = Nil
		if n := len(m.order); n > 0 {
			m.focused = m.order[n-1]
		}
	}
	m.mu.Unlock()
	m.emit(Event{Kind: EventClosed, Handle: h})
}

// RequestClose reports that the user asked to close a window. The window
// stays open until the coordinator calls Close.
func (m *Manager) RequestClose(h Handle) {
	m.mu.Lock()
	_, ok := m.windows[h]
	m.mu.Unlock()
	if ok {
		m.emit(Event{Kind: EventCloseRequested, Handle: h})
	}
}

// Focus raises a window to the top of the stacking order.
func (m *Manager) Focus(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[h]; !ok {
		return false
	}
	for i, candidate := range m.order {
		if candidate == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.order = append(m.order, h)
	m.focused = h
	return true
}

// Focused returns the window on top of the stack.
func (m *Manager) Focused() (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focused, m.focused != Nil
}

// Windows returns the open windows in stacking order, topmost last.
func (m *Manager) Windows() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Window, 0, len(m.order))
	for _, h := range m.order {
		out = append(out, Window{Handle: h, Sizing: m.windows[h]})
	}
	return out
}

// Sizing returns the policy a window was opened with.
func (m *Manager) Sizing(h Handle) (Sizing, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.windows[h]
	return s, ok
}

// Stop refuses further opens and closes the event feed.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true
	close(m.events)
}

func (m *Manager) emit(evt Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	select {
	case m.events <- evt:
	default:
		// feed full; the event is dropped
	}
}
