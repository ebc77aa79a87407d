package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/settings"
	"github.com/atomicstack/tagmaster/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

func assertFrame(t *testing.T, view string, w, h int) {
	t.Helper()
	lines := strings.Split(view, "\n")
	if len(lines) != h {
		t.Fatalf("expected %d lines, got %d", h, len(lines))
	}
	for i, line := range lines {
		if got := ansi.StringWidth(line); got > w {
			t.Fatalf("expected line %d within %d cells, got %d: %q", i, w, got, line)
		}
	}
}

func TestViewForUnknownHandle(t *testing.T) {
	f := newFixture(t)
	if got := f.model().ViewFor(host.Handle(uuid.New())); got != "" {
		t.Fatalf("expected empty view for unknown handle, got %q", got)
	}
}

func TestHomeView(t *testing.T) {
	saved := settings.Settings{Recent: []settings.Recent{{Name: "Holiday", Kind: "local", Location: "/photos/2024"}}}
	f := newFixtureWith(t, saved, nil)
	view := f.h.View()
	for _, want := range []string{"TagMaster", "Create Project...", "Recent Projects", "Holiday", "/photos/2024"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected home view to contain %q:\n%s", want, view)
		}
	}
	assertFrame(t, view, 100, 30)
	links := map[string]string{
		"GenEq UC Berkeley":              attributionURL,
		"GNU General Public Licence v.3": licenceURL,
		"GitHub":                         sourceURL,
	}
	for label, url := range links {
		if !strings.Contains(view, label) || !strings.Contains(view, ansi.SetHyperlink(url)) {
			t.Fatalf("expected home view to link %q to %s:\n%s", label, url, view)
		}
	}
	if !strings.Contains(view, "A project by ") {
		t.Fatalf("expected attribution line:\n%s", view)
	}

	f.typeText("zzz")
	if view := f.h.View(); !strings.Contains(view, `No matches for "zzz"`) {
		t.Fatalf("expected no-match message:\n%s", view)
	}
}

func TestProjectView(t *testing.T) {
	f := newFixture(t)
	f.createLocalProject(t, "Alpha")
	view := f.h.View()
	for _, want := range []string{"Home", "Alpha", "File Tree", "Metadata", "Viewer"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected project view to contain %q:\n%s", want, view)
		}
	}
	assertFrame(t, view, 100, 30)
}

func TestDialogViews(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlN)
	view := f.h.View()
	if !strings.Contains(view, "New Project") || !strings.Contains(view, "project name is required") {
		t.Fatalf("expected new project dialog with validation:\n%s", view)
	}
	assertFrame(t, view, 100, 30)

	f.focusMain(t)
	f.press(tea.KeyCtrlG)
	view = f.h.View()
	if !strings.Contains(view, "Program Settings") || !strings.Contains(view, "Not logged in") {
		t.Fatalf("expected settings dialog:\n%s", view)
	}
	main := f.handle(t, window.KindMain)
	if got := f.model().ViewFor(main); !strings.Contains(got, "Recent Projects") {
		t.Fatalf("expected main rendered through ViewFor:\n%s", got)
	}
}

func TestStatusLineShowsLastNotice(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlP)
	if view := f.h.View(); !strings.Contains(view, "No project is open") {
		t.Fatalf("expected notice in status line:\n%s", view)
	}
}

func TestWindowSizeMsgResizesFrame(t *testing.T) {
	f := newFixture(t)
	m := NewModel(Options{Host: f.host})
	h := NewHarness(m)
	h.Start()
	h.Send(tea.WindowSizeMsg{Width: 60, Height: 12})
	assertFrame(t, h.View(), 60, 12)
}

func TestVerboseStatusShowsRunningTasks(t *testing.T) {
	f := newFixture(t)
	m := NewModel(Options{Host: f.host, Width: 100, Height: 30, Verbose: true})
	h := NewHarness(m)
	h.Start()
	h.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlG})
	if view := h.View(); !strings.Contains(view, "Running: #2 open program-settings") {
		t.Fatalf("expected running task in status line:\n%s", view)
	}
}

func TestViewLeavesHelpWidthAlone(t *testing.T) {
	f := newFixture(t)
	before := f.model().help.Width
	_ = f.h.View()
	if got := f.model().help.Width; got != before {
		t.Fatalf("expected help width %d after render, got %d", before, got)
	}
}
