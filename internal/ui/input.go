package ui

import (
	"unicode"

	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/window"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// resizeStep is the ratio change applied by one grow or shrink key.
const resizeStep = 0.05

func keyMatches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.exiting {
		return nil
	}
	if keyMatches(keyMsg, keys.Quit) {
		if h, found := m.session.Windows().Find(window.KindMain); found {
			return m.closeWindow(h)
		}
		return m.exit("interrupt")
	}
	if keyMatches(keyMsg, keys.CycleWindow) {
		m.cycleWindow()
		return nil
	}
	if m.focus == host.Nil {
		return nil
	}
	kind, known := m.session.Windows().Route(m.focus)
	if !known {
		return nil
	}
	if kind != window.KindMain && keyMatches(keyMsg, keys.CloseWindow) {
		return m.closeFocused()
	}
	switch kind {
	case window.KindMain:
		return m.handleMainKey(keyMsg)
	case window.KindNewProject:
		return m.handleNewProjectKey(keyMsg)
	case window.KindProgramSettings:
		return m.handleSettingsKey(keyMsg)
	case window.KindProjectSettings:
		return m.handleProjectSettingsKey(keyMsg)
	}
	return nil
}

func (m *Model) handleMainKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keyMatches(msg, keys.NewProject):
		return m.openWindow(window.KindNewProject)
	case keyMatches(msg, keys.ProgramSettings):
		return m.openWindow(window.KindProgramSettings)
	case keyMatches(msg, keys.ProjectSettings):
		if !m.session.HasProject() {
			m.session.Notify(state.NoticeError, "No project is open")
			return nil
		}
		return m.openWindow(window.KindProjectSettings)
	case keyMatches(msg, keys.HomeTab):
		m.requestScreen(state.ScreenHome)
		return nil
	case keyMatches(msg, keys.ProjectTab):
		m.requestScreen(state.ScreenProject)
		return nil
	case keyMatches(msg, keys.CloseProject):
		m.closeProject()
		return nil
	}
	if m.session.Screen() == state.ScreenProject {
		return m.handleProjectKey(msg)
	}
	return m.handleHomeKey(msg)
}

func (m *Model) requestScreen(target state.Screen) {
	effective := m.session.RequestScreen(target)
	events.Screen.Request(target.String(), effective.String())
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keyMatches(msg, keys.Up):
		m.recent.MoveCursor(-1)
		return nil
	case keyMatches(msg, keys.Down):
		m.recent.MoveCursor(1)
		return nil
	case keyMatches(msg, keys.Select):
		return m.reopenRecent()
	}
	switch msg.Type {
	case tea.KeyEsc:
		if m.recent.ClearFilter() {
			events.Filter.Cleared(recentListID)
		}
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.recent.BackspaceFilter() {
			events.Filter.Backspace(recentListID, m.recent.Filter, len(m.recent.Items))
		}
	case tea.KeySpace:
		m.appendRecentFilter(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		m.appendRecentFilter(string(msg.Runes))
	}
	return nil
}

const recentListID = "recent"

func (m *Model) appendRecentFilter(text string) {
	if m.recent.AppendFilter(text) {
		events.Filter.Append(recentListID, m.recent.Filter, len(m.recent.Items))
	}
}

func (m *Model) handleProjectKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keyMatches(msg, keys.NextPane):
		m.cyclePane(1)
	case keyMatches(msg, keys.PrevPane):
		m.cyclePane(-1)
	case keyMatches(msg, keys.Grow):
		m.resizeFocusedPane(resizeStep)
	case keyMatches(msg, keys.Shrink):
		m.resizeFocusedPane(-resizeStep)
	case keyMatches(msg, keys.SwapPane):
		m.swapFocusedPane()
	case keyMatches(msg, keys.ClosePane):
		m.closeFocusedPane()
	case keyMatches(msg, keys.ResetLayout):
		m.resetLayout()
	case keyMatches(msg, keys.Up):
		if m.focusPane == layout.PaneFileList {
			m.files.MoveCursor(-1)
		}
	case keyMatches(msg, keys.Down):
		if m.focusPane == layout.PaneFileList {
			m.files.MoveCursor(1)
		}
	}
	return nil
}

func (m *Model) focusedLeaf() (layout.NodeID, int, []layout.Leaf) {
	leaves := m.session.Panes().Leaves()
	for i, leaf := range leaves {
		if leaf.Content == m.focusPane {
			return leaf.ID, i, leaves
		}
	}
	if len(leaves) > 0 {
		m.focusPane = leaves[0].Content
		return leaves[0].ID, 0, leaves
	}
	return layout.NodeID{}, -1, leaves
}

func (m *Model) cyclePane(delta int) {
	_, idx, leaves := m.focusedLeaf()
	if idx < 0 || len(leaves) < 2 {
		return
	}
	next := (idx + delta + len(leaves)) % len(leaves)
	m.focusPane = leaves[next].Content
	events.Pane.Focus(m.focusPane.String())
}

// resizeFocusedPane grows the focused leaf's share of its parent split by
// delta. Negative deltas shrink it.
func (m *Model) resizeFocusedPane(delta float64) {
	tree := m.session.Panes()
	leaf, idx, _ := m.focusedLeaf()
	if idx < 0 {
		return
	}
	parent, ok := tree.Parent(leaf)
	if !ok {
		return
	}
	ratio, ok := tree.Ratio(parent)
	if !ok {
		return
	}
	_, _, w, h := m.paneArea()
	rects := tree.Rects(w, h)
	if lr, pr := rects[leaf], rects[parent]; lr.X != pr.X || lr.Y != pr.Y {
		delta = -delta
	}
	applied := tree.Resize(parent, ratio+delta)
	newRatio, _ := tree.Ratio(parent)
	events.Pane.Resize(parent.String(), newRatio, applied)
}

// closeFocusedPane drops the focused leaf; its sibling takes the space and
// focus moves to the next leaf. The last pane stays.
func (m *Model) closeFocusedPane() {
	tree := m.session.Panes()
	leaf, idx, leaves := m.focusedLeaf()
	if idx < 0 {
		return
	}
	closed := m.focusPane
	next := leaves[(idx+1)%len(leaves)].ID
	applied := tree.Remove(leaf)
	events.Pane.Remove(closed.String(), applied)
	if !applied {
		return
	}
	if content, ok := tree.Content(next); ok {
		m.focusPane = content
		events.Pane.Focus(content.String())
	}
}

func (m *Model) resetLayout() {
	tree := m.session.Panes()
	tree.Reset(layout.Canonical())
	m.drag = nil
	events.Pane.Reset(tree.Len())
	if _, ok := tree.Find(m.focusPane); !ok {
		m.focusPane = firstPane(m)
	}
}

func (m *Model) swapFocusedPane() {
	tree := m.session.Panes()
	leaf, idx, leaves := m.focusedLeaf()
	if idx < 0 || len(leaves) < 2 {
		return
	}
	other := leaves[(idx+1)%len(leaves)]
	applied := tree.Swap(leaf, other.ID)
	events.Pane.Drag(leaf.String(), other.ID.String(), layout.EdgeCenter.String(), applied)
}
