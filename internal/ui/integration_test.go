package ui

import (
	"testing"

	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	f.checkInvariant(t)

	// log in
	f.press(tea.KeyCtrlG)
	f.typeText("key")
	f.press(tea.KeyTab)
	f.typeText("secret")
	f.press(tea.KeyTab)
	f.press(tea.KeyEnter)
	if !f.model().Session().LoggedIn() {
		t.Fatalf("expected logged in")
	}
	f.press(tea.KeyEsc)
	if f.model().Session().Windows().Count(window.KindProgramSettings) != 0 {
		t.Fatalf("expected settings window closed")
	}
	f.checkInvariant(t)

	// create a project from a picked folder
	f.picker.Path = t.TempDir()
	f.press(tea.KeyCtrlN)
	f.typeText("Trip")
	f.press(tea.KeyCtrlO)
	f.press(tea.KeyTab)
	f.press(tea.KeyTab)
	f.press(tea.KeyTab)
	f.press(tea.KeyEnter)
	s := f.model().Session()
	p, ok := s.Project()
	if !ok || p.Name != "Trip" || p.RootPath() != f.picker.Path {
		t.Fatalf("expected Trip at the picked folder, got %+v (%v)", p, ok)
	}
	if s.Screen() != state.ScreenProject || s.Panes().Len() != 3 {
		t.Fatalf("expected project screen with canonical panes")
	}
	f.checkInvariant(t)

	// rearrange, then reopen: the layout resets
	f.typeText("x")
	if leaves := s.Panes().Leaves(); leaves[0].Content != layout.PaneDataEntry {
		t.Fatalf("expected swapped layout, got %+v", leaves)
	}
	f.press(tea.KeyF1)
	f.press(tea.KeyEnter)
	if leaves := s.Panes().Leaves(); leaves[0].Content != layout.PaneFileList {
		t.Fatalf("expected canonical layout after reopening, got %+v", leaves)
	}

	// closing main ends everything
	f.press(tea.KeyCtrlC)
	if !f.h.Quit() || s.Windows().Len() != 0 || s.HasProject() {
		t.Fatalf("expected clean exit")
	}
	for _, h := range f.host.Opened() {
		if !f.host.WasClosed(h) {
			t.Fatalf("expected window %s closed", h.Short())
		}
	}
}
