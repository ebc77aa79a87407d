package ui

import (
	"github.com/atomicstack/tagmaster/internal/backend"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{watcher: w}
		}
		return backendEventMsg{watcher: w, event: evt}
	}
}

type backendEventMsg struct {
	watcher *backend.Watcher
	event   backend.Event
}

type backendDoneMsg struct {
	watcher *backend.Watcher
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	// a replaced watcher drains into nothing
	if eventMsg.watcher != m.watcher {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	return waitForBackendEvent(m.watcher)
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	doneMsg, ok := msg.(backendDoneMsg)
	if !ok {
		return nil
	}
	if doneMsg.watcher == m.watcher {
		m.watcher = nil
	}
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	root := ""
	if project, ok := m.session.Project(); ok {
		root = project.RootPath()
	}
	res := m.dispatcher.Handle(evt, root)
	if res.TreeUpdated {
		m.refreshFiles()
	}
}

// startWatcher replaces the running watcher with one for root. Remote
// projects have no local root and run without a watcher.
func (m *Model) startWatcher(root string) tea.Cmd {
	m.stopWatcher()
	if root == "" || m.watch == nil {
		return nil
	}
	m.watcher = m.watch(root)
	events.Tree.Watch(root)
	return waitForBackendEvent(m.watcher)
}

func (m *Model) stopWatcher() {
	if m.watcher == nil {
		return
	}
	m.watcher.Stop()
	m.watcher = nil
}
