package ui

import (
	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

// dragState is the gesture started by a left press inside the pane area.
// Exactly one of split and source is set.
type dragState struct {
	split  layout.NodeID
	source layout.NodeID
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || m.exiting {
		return nil
	}
	if mouse.Action == tea.MouseActionPress && mouse.Y == stripRow {
		switch mouse.Button {
		case tea.MouseButtonLeft:
			m.clickWindowStrip(mouse.X)
		case tea.MouseButtonMiddle:
			return m.middleClickWindowStrip(mouse.X)
		}
		return nil
	}
	kind, known := m.session.Windows().Route(m.focus)
	if !known || kind != window.KindMain {
		m.drag = nil
		return nil
	}
	if mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft && mouse.Y == tabsRow {
		m.clickScreenTab(mouse.X)
		return nil
	}
	if m.session.Screen() != state.ScreenProject {
		m.drag = nil
		return nil
	}
	ax, ay, w, h := m.paneArea()
	x, y := mouse.X-ax, mouse.Y-ay
	switch mouse.Action {
	case tea.MouseActionPress:
		if mouse.Button == tea.MouseButtonLeft {
			m.beginDrag(x, y, w, h)
		}
	case tea.MouseActionMotion:
		m.continueDrag(x, y, w, h)
	case tea.MouseActionRelease:
		m.endDrag(x, y, w, h)
	}
	return nil
}

func (m *Model) clickWindowStrip(x int) {
	w, _ := m.size()
	for _, span := range m.windowSpans(w) {
		if x >= span.x0 && x < span.x1 {
			m.focusWindow(span.handle)
			return
		}
	}
}

// middleClickWindowStrip closes the window under x, like a tab bar.
func (m *Model) middleClickWindowStrip(x int) tea.Cmd {
	w, _ := m.size()
	for _, span := range m.windowSpans(w) {
		if x >= span.x0 && x < span.x1 {
			return m.requestClose(span.handle)
		}
	}
	return nil
}

func (m *Model) clickScreenTab(x int) {
	for _, span := range m.screenSpans() {
		if x >= span.x0 && x < span.x1 {
			m.requestScreen(span.screen)
			return
		}
	}
}

func (m *Model) beginDrag(x, y, w, h int) {
	tree := m.session.Panes()
	m.drag = nil
	if split, ok := tree.DividerAt(x, y, w, h); ok {
		m.drag = &dragState{split: split}
		return
	}
	for _, lr := range tree.LeafRects(w, h) {
		if !lr.Rect.Contains(x, y) {
			continue
		}
		if m.focusPane != lr.Content {
			m.focusPane = lr.Content
			events.Pane.Focus(lr.Content.String())
		}
		// top border or title row grabs the pane
		if y <= lr.Rect.Y+1 {
			m.drag = &dragState{source: lr.ID}
		}
		return
	}
}

func (m *Model) continueDrag(x, y, w, h int) {
	if m.drag == nil || !m.drag.split.Valid() {
		return
	}
	tree := m.session.Panes()
	ratio, ok := tree.RatioAt(m.drag.split, x, y, w, h)
	if !ok {
		m.drag = nil
		return
	}
	applied := tree.Resize(m.drag.split, ratio)
	if applied {
		events.Pane.Resize(m.drag.split.String(), ratio, applied)
	}
}

func (m *Model) endDrag(x, y, w, h int) {
	drag := m.drag
	m.drag = nil
	if drag == nil || !drag.source.Valid() {
		return
	}
	tree := m.session.Panes()
	// the layout may have been reset between press and release
	if !tree.IsLeaf(drag.source) {
		return
	}
	target, ok := tree.HitTest(x, y, w, h)
	if !ok || target.Leaf == drag.source {
		return
	}
	applied := tree.DragSwap(drag.source, target)
	events.Pane.Drag(drag.source.String(), target.Leaf.String(), target.Edge.String(), applied)
}
