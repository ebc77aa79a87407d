package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/ui/command"
	"github.com/atomicstack/tagmaster/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

type windowOpenedMsg struct {
	kind   window.Kind
	handle host.Handle
	err    error
}

type hostEventMsg struct {
	event host.Event
}

type hostDoneMsg struct{}

type focuser interface {
	Focus(h host.Handle) bool
}

// focusReporter is a host that keeps its own stacking order.
type focusReporter interface {
	Focused() (host.Handle, bool)
}

// closeRequester is a host that routes user close gestures back through
// its event feed.
type closeRequester interface {
	RequestClose(h host.Handle)
}

func waitForHostEvent(h host.Host) tea.Cmd {
	if h == nil {
		return nil
	}
	ch := h.Events()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return hostDoneMsg{}
		}
		return hostEventMsg{event: evt}
	}
}

// openWindow shows kind, reusing the registered window for singletons.
func (m *Model) openWindow(kind window.Kind) tea.Cmd {
	if m.exiting {
		return nil
	}
	existing, action := m.session.Windows().Open(kind)
	events.Window.Open(kind.String(), action.String(), existing.Short())
	switch action {
	case window.OpenExisting:
		m.focusWindow(existing)
		return nil
	case window.OpenPending:
		return nil
	}
	if kind == window.KindNewProject {
		m.beginProjectForm()
	}
	if m.host == nil {
		return m.applyWindowOpened(windowOpenedMsg{kind: kind, err: fmt.Errorf("no window host")})
	}
	hst := m.host
	sizing := kind.Sizing()
	_, cmd := m.bus.Issue(command.KindWindow, "open "+kind.String(), func(ctx context.Context) tea.Msg {
		h, err := hst.Open(ctx, sizing)
		return windowOpenedMsg{kind: kind, handle: h, err: err}
	})
	return cmd
}

func (m *Model) applyWindowOpened(msg windowOpenedMsg) tea.Cmd {
	reg := m.session.Windows()
	if msg.err != nil {
		reg.Abandon(msg.kind)
		m.session.Notify(state.NoticeError, fmt.Sprintf("open %s: %v", msg.kind.Title(), msg.err))
		if msg.kind == window.KindNewProject {
			m.dropProjectFormIfOrphaned()
		}
		if msg.kind == window.KindMain && !m.exiting {
			return m.exit("main window failed to open")
		}
		return nil
	}
	if m.exiting {
		reg.Abandon(msg.kind)
		m.closeHostWindow(msg.handle)
		return nil
	}
	registered := reg.Register(msg.handle, msg.kind)
	events.Window.Opened(msg.kind.String(), msg.handle.Short(), registered)
	if !registered {
		m.closeHostWindow(msg.handle)
		if msg.kind == window.KindNewProject {
			m.dropProjectFormIfOrphaned()
		}
		if h, ok := reg.Find(msg.kind); ok {
			m.focusWindow(h)
		}
		return nil
	}
	if msg.kind == window.KindNewProject {
		// a project created meanwhile consumed the previous form
		m.beginProjectForm()
	}
	m.focusWindow(msg.handle)
	return nil
}

func (m *Model) focusWindow(h host.Handle) {
	if _, ok := m.session.Windows().Route(h); !ok {
		return
	}
	m.focus = h
	if f, ok := m.host.(focuser); ok {
		f.Focus(h)
	}
	events.Window.Focus(h.Short())
}

// cycleWindow focuses the window registered after the focused one.
func (m *Model) cycleWindow() {
	entries := m.session.Windows().Entries()
	if len(entries) < 2 {
		return
	}
	next := 0
	for i, entry := range entries {
		if entry.Handle == m.focus {
			next = (i + 1) % len(entries)
			break
		}
	}
	m.focusWindow(entries[next].Handle)
}

// closeWindow removes h from the registry and asks the host to destroy it.
// Closing Main tears the project down and ends the program.
func (m *Model) closeWindow(h host.Handle) tea.Cmd {
	out := m.session.CloseWindow(h)
	if !out.Known {
		events.Window.Unknown(h.Short(), "close")
		return nil
	}
	events.Window.Close(out.Entry.Kind.String(), h.Short(), out.Exit)
	m.closeHostWindow(h)
	if out.Exit {
		for _, other := range out.Discarded {
			m.closeHostWindow(other.Handle)
		}
		return m.exit("main window closed")
	}
	if out.Entry.Kind == window.KindNewProject {
		m.dropProjectFormIfOrphaned()
	}
	if m.focus == h {
		m.focus = host.Nil
		m.focusWindow(m.nextFocus())
	}
	return nil
}

// nextFocus picks the window to focus after the focused one closed: the
// host's topmost window when it is registered, else the newest entry.
func (m *Model) nextFocus() host.Handle {
	if r, ok := m.host.(focusReporter); ok {
		if top, found := r.Focused(); found {
			if _, known := m.session.Windows().Route(top); known {
				return top
			}
		}
	}
	entries := m.session.Windows().Entries()
	if n := len(entries); n > 0 {
		return entries[n-1].Handle
	}
	return host.Nil
}

// requestClose asks the host to close h on the user's behalf. Hosts
// without an event feed cannot report the request back, so the window is
// closed directly.
func (m *Model) requestClose(h host.Handle) tea.Cmd {
	if _, known := m.session.Windows().Route(h); !known {
		events.Window.Unknown(h.Short(), "request-close")
		return nil
	}
	if r, ok := m.host.(closeRequester); ok && m.host.Events() != nil {
		r.RequestClose(h)
		return nil
	}
	return m.closeWindow(h)
}

// closeFocused closes the focused window, Main included.
func (m *Model) closeFocused() tea.Cmd {
	if m.focus == host.Nil {
		return nil
	}
	return m.closeWindow(m.focus)
}

func (m *Model) closeHostWindow(h host.Handle) {
	if m.host != nil && h != host.Nil {
		m.host.Close(h)
	}
}

func (m *Model) exit(reason string) tea.Cmd {
	m.exiting = true
	m.focus = host.Nil
	m.stopWatcher()
	m.newProject = nil
	events.App.Exit(reason)
	return tea.Quit
}

func (m *Model) handleHostEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(hostEventMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	switch eventMsg.event.Kind {
	case host.EventCloseRequested, host.EventClosed:
		if _, known := m.session.Windows().Route(eventMsg.event.Handle); known {
			cmd = m.closeWindow(eventMsg.event.Handle)
		}
	}
	if m.exiting {
		return cmd
	}
	wait := waitForHostEvent(m.host)
	if cmd == nil {
		return wait
	}
	return tea.Batch(cmd, wait)
}

func (m *Model) handleHostDoneMsg(tea.Msg) tea.Cmd {
	if m.exiting {
		return nil
	}
	return m.exit("window host stopped")
}
