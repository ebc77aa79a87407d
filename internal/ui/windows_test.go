package ui

import (
	"errors"
	"testing"

	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/settings"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

func TestInitOpensMainWindow(t *testing.T) {
	f := newFixture(t)
	main := f.handle(t, window.KindMain)
	if f.model().Focused() != main {
		t.Fatalf("expected main focused, got %s", f.model().Focused().Short())
	}
	if s, ok := f.host.Sizing(main); !ok || !s.Fill {
		t.Fatalf("expected main to fill the screen, got %+v", s)
	}
	if got := f.model().Session().Screen(); got != state.ScreenHome {
		t.Fatalf("expected home screen, got %s", got)
	}
	f.checkInvariant(t)
}

func TestMainOpenFailureExits(t *testing.T) {
	f := newFixtureWith(t, settings.Settings{}, func(s host.Sizing) error {
		if s.Fill {
			return errors.New("no terminal")
		}
		return nil
	})
	if !f.h.Quit() || !f.model().Exiting() {
		t.Fatalf("expected the program to exit when main cannot open")
	}
	if n := f.model().Session().Windows().Len(); n != 0 {
		t.Fatalf("expected no windows, got %d", n)
	}
}

func TestSingletonWindowsReuseExisting(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlG)
	settingsHandle := f.handle(t, window.KindProgramSettings)
	f.focusMain(t)
	f.press(tea.KeyCtrlG)
	if got := f.model().Session().Windows().Count(window.KindProgramSettings); got != 1 {
		t.Fatalf("expected one settings window, got %d", got)
	}
	if f.model().Focused() != settingsHandle {
		t.Fatalf("expected existing settings window to be focused")
	}
	if n := len(f.host.Opened()); n != 2 {
		t.Fatalf("expected 2 host windows, got %d", n)
	}
}

func TestSingletonOpenWhilePending(t *testing.T) {
	f := newFixture(t)
	first := f.h.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlG})
	if first == nil {
		t.Fatalf("expected an open command")
	}
	if second := f.h.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlG}); second != nil {
		t.Fatalf("expected no second open while pending")
	}
	f.h.Run(first)
	if got := f.model().Session().Windows().Count(window.KindProgramSettings); got != 1 {
		t.Fatalf("expected one settings window, got %d", got)
	}
	f.checkInvariant(t)
}

func TestNewProjectWindowsShareForm(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlN)
	f.typeText("Shared")
	f.focusMain(t)
	f.press(tea.KeyCtrlN)
	if got := f.model().Session().Windows().Count(window.KindNewProject); got != 2 {
		t.Fatalf("expected two new project windows, got %d", got)
	}
	form, ok := f.model().Session().Form()
	if !ok || form.Name != "Shared" {
		t.Fatalf("expected shared form with name, got %+v (%v)", form, ok)
	}
	f.press(tea.KeyEsc)
	if _, ok := f.model().Session().Form(); !ok {
		t.Fatalf("expected form to survive while a window remains")
	}
	f.h.Send(hostEventMsg{event: host.Event{Kind: host.EventCloseRequested, Handle: f.handle(t, window.KindNewProject)}})
	if _, ok := f.model().Session().Form(); ok {
		t.Fatalf("expected form discarded with the last window")
	}
	f.checkInvariant(t)
}

func TestDialogOpenFailureKeepsRunning(t *testing.T) {
	f := newFixtureWith(t, settings.Settings{}, func(s host.Sizing) error {
		if s.Title == window.KindNewProject.Title() {
			return errors.New("too many windows")
		}
		return nil
	})
	f.press(tea.KeyCtrlN)
	if f.model().Exiting() {
		t.Fatalf("expected program to keep running")
	}
	if _, ok := f.model().Session().Form(); ok {
		t.Fatalf("expected form dropped after failed open")
	}
	n, ok := f.model().Session().LastNotice()
	if !ok || n.Level != state.NoticeError {
		t.Fatalf("expected error notice, got %+v", n)
	}
	f.checkInvariant(t)
}

func TestCloseMainClosesEverything(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlG)
	f.focusMain(t)
	f.press(tea.KeyCtrlN)
	f.press(tea.KeyCtrlC)
	if !f.h.Quit() || !f.model().Exiting() {
		t.Fatalf("expected exit after closing main")
	}
	for _, h := range f.host.Opened() {
		if !f.host.WasClosed(h) {
			t.Fatalf("expected window %s closed", h.Short())
		}
	}
	if n := f.model().Session().Windows().Len(); n != 0 {
		t.Fatalf("expected empty registry, got %d", n)
	}
	if _, ok := f.model().Session().Form(); ok {
		t.Fatalf("expected form dropped on exit")
	}
	if f.h.View() != "" {
		t.Fatalf("expected empty view after exit")
	}
}

func TestHostCloseOfUnknownHandleIgnored(t *testing.T) {
	f := newFixture(t)
	f.h.Send(hostEventMsg{event: host.Event{Kind: host.EventClosed, Handle: host.Nil}})
	if f.model().Exiting() {
		t.Fatalf("expected unknown close to be ignored")
	}
	if n := f.model().Session().Windows().Len(); n != 1 {
		t.Fatalf("expected main to remain, got %d windows", n)
	}
}

func TestCycleWindow(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlG)
	main := f.handle(t, window.KindMain)
	f.press(tea.KeyCtrlT)
	if f.model().Focused() != main {
		t.Fatalf("expected cycling to wrap to main")
	}
	if f.host.Focused() != main {
		t.Fatalf("expected host focus to follow")
	}
}

func TestProjectSettingsNeedsProject(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlP)
	if f.model().Session().Windows().Count(window.KindProjectSettings) != 0 {
		t.Fatalf("expected no project settings window without a project")
	}
	f.createLocalProject(t, "Alpha")
	f.press(tea.KeyCtrlP)
	if kind := f.focusedKind(t); kind != window.KindProjectSettings {
		t.Fatalf("expected project settings focused, got %s", kind)
	}
	f.press(tea.KeyEnter)
	if f.model().Session().HasProject() {
		t.Fatalf("expected project closed from project settings")
	}
	if f.model().Session().Windows().Count(window.KindProjectSettings) != 0 {
		t.Fatalf("expected project settings window closed")
	}
	f.checkInvariant(t)
}
