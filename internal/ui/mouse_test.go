package ui

import (
	"testing"

	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/testutil"
	"github.com/atomicstack/tagmaster/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

func mouseAt(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// With a 100x30 model the pane area is 100x27 starting at row 2.

func TestDragDividerResizesRoot(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	tree := f.model().Session().Panes()
	root := tree.Root()

	f.h.Send(mouseAt(49, 12, tea.MouseActionPress))
	f.h.Send(mouseAt(70, 12, tea.MouseActionMotion))
	f.h.Send(mouseAt(70, 12, tea.MouseActionRelease))
	if r, _ := tree.Ratio(root); r < 0.699 || r > 0.701 {
		t.Fatalf("expected root ratio 0.7, got %v", r)
	}

	f.h.Send(mouseAt(85, 12, tea.MouseActionPress))
	f.h.Send(mouseAt(99, 12, tea.MouseActionMotion))
	if r, _ := tree.Ratio(root); r < 0.699 || r > 0.701 {
		t.Fatalf("expected press away from a divider to leave the ratio, got %v", r)
	}
}

func TestDividerDragClampsRatio(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	tree := f.model().Session().Panes()
	f.h.Send(mouseAt(50, 20, tea.MouseActionPress))
	f.h.Send(mouseAt(0, 20, tea.MouseActionMotion))
	if r, _ := tree.Ratio(tree.Root()); r != layout.MinRatio {
		t.Fatalf("expected ratio clamped to %v, got %v", layout.MinRatio, r)
	}
}

func TestDragPaneTitleOntoInteriorSwaps(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	tree := f.model().Session().Panes()

	f.h.Send(mouseAt(10, 3, tea.MouseActionPress))
	f.h.Send(mouseAt(75, 15, tea.MouseActionRelease))
	leaves := tree.Leaves()
	if leaves[0].Content != layout.PaneViewer || leaves[2].Content != layout.PaneFileList {
		t.Fatalf("expected file list and viewer swapped, got %+v", leaves)
	}
	if tree.Len() != 3 {
		t.Fatalf("expected three leaves, got %d", tree.Len())
	}
}

func TestDragPaneOntoEdgeResplits(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	tree := f.model().Session().Panes()

	// viewer title row, dropped on the bottom band of the file list
	f.h.Send(mouseAt(75, 3, tea.MouseActionPress))
	f.h.Send(mouseAt(25, 14, tea.MouseActionRelease))
	if err := tree.Validate(); err != nil {
		t.Fatalf("expected valid tree, got %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("expected three leaves, got %d", tree.Len())
	}
	viewer, _ := tree.Find(layout.PaneViewer)
	files, _ := tree.Find(layout.PaneFileList)
	vp, _ := tree.Parent(viewer)
	fp, _ := tree.Parent(files)
	if vp != fp {
		t.Fatalf("expected viewer to share a split with the file list")
	}
}

func TestPressInsidePaneBodyOnlyFocuses(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	tree := f.model().Session().Panes()
	before := tree.Leaves()
	f.h.Send(mouseAt(75, 20, tea.MouseActionPress))
	f.h.Send(mouseAt(10, 8, tea.MouseActionRelease))
	if f.model().focusPane != layout.PaneViewer {
		t.Fatalf("expected viewer focused, got %s", f.model().focusPane)
	}
	after := tree.Leaves()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected layout unchanged, got %+v", after)
		}
	}
}

func TestClickScreenTabs(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	s := f.model().Session()
	f.h.Send(mouseAt(2, 1, tea.MouseActionPress))
	if s.Screen() != state.ScreenHome {
		t.Fatalf("expected home after clicking its tab, got %s", s.Screen())
	}
	f.h.Send(mouseAt(8, 1, tea.MouseActionPress))
	if s.Screen() != state.ScreenProject {
		t.Fatalf("expected project after clicking its tab, got %s", s.Screen())
	}
}

func TestClickWindowStripFocuses(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlG)
	main := f.handle(t, window.KindMain)
	f.h.Send(mouseAt(1, 0, tea.MouseActionPress))
	if f.model().Focused() != main {
		t.Fatalf("expected main focused from the window strip")
	}
}

func TestMouseIgnoredOnDialogs(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	f.press(tea.KeyCtrlG)
	tree := f.model().Session().Panes()
	f.h.Send(mouseAt(49, 12, tea.MouseActionPress))
	f.h.Send(mouseAt(70, 12, tea.MouseActionMotion))
	if r, _ := tree.Ratio(tree.Root()); r != 0.5 {
		t.Fatalf("expected panes untouched while a dialog is focused, got %v", r)
	}
}

func TestMiddleClickWindowStripCloses(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlG)
	settingsWin := f.handle(t, window.KindProgramSettings)
	main := f.handle(t, window.KindMain)
	x := -1
	for _, span := range f.model().windowSpans(100) {
		if span.handle == settingsWin {
			x = span.x0
		}
	}
	if x < 0 {
		t.Fatalf("expected settings tab in the window strip")
	}
	click := mouseAt(x, 0, tea.MouseActionPress)
	click.Button = tea.MouseButtonMiddle
	f.h.Send(click)
	if _, ok := f.model().Session().Windows().Find(window.KindProgramSettings); ok {
		t.Fatalf("expected settings window closed")
	}
	if !f.host.WasClosed(settingsWin) {
		t.Fatalf("expected host to close the settings window")
	}
	if f.model().Focused() != main {
		t.Fatalf("expected main focused after close")
	}
}

// feedHost reports close gestures through an event feed the test reads
// directly.
type feedHost struct {
	*testutil.Host
	feed      chan host.Event
	requested []host.Handle
	top       host.Handle
}

func (h *feedHost) Events() <-chan host.Event { return h.feed }

func (h *feedHost) RequestClose(handle host.Handle) {
	h.requested = append(h.requested, handle)
}

func (h *feedHost) Focused() (host.Handle, bool) { return h.top, h.top != host.Nil }

func TestRequestCloseGoesThroughHostFeed(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlG)
	f.focusMain(t)
	f.press(tea.KeyCtrlN)
	m := f.model()
	main := f.handle(t, window.KindMain)
	newProject := f.handle(t, window.KindNewProject)
	if m.Focused() != newProject {
		t.Fatalf("expected new project window focused")
	}
	fh := &feedHost{Host: f.host, feed: make(chan host.Event, 1), top: main}
	m.host = fh

	if cmd := m.requestClose(newProject); cmd != nil {
		t.Fatalf("expected no command while the host decides")
	}
	if len(fh.requested) != 1 || fh.requested[0] != newProject {
		t.Fatalf("expected close request for new project window, got %v", fh.requested)
	}
	if _, ok := m.Session().Windows().Route(newProject); !ok {
		t.Fatalf("expected window kept until the host reports back")
	}

	m.closeWindow(newProject)
	if m.Focused() != main {
		t.Fatalf("expected host's topmost window focused, got %s", m.Focused().Short())
	}
	if cmd := m.requestClose(newProject); cmd != nil || len(fh.requested) != 1 {
		t.Fatalf("expected unknown handle to be ignored")
	}
}
