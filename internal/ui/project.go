package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tagmaster/internal/filetree"
	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/settings"
	"github.com/atomicstack/tagmaster/internal/state"
	uistate "github.com/atomicstack/tagmaster/internal/ui/state"
	"github.com/atomicstack/tagmaster/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

func (m *Model) createProjectFromForm() tea.Cmd {
	m.syncSessionFromProjectForm()
	form, ok := m.session.Form()
	if !ok {
		return nil
	}
	return m.createProject(form)
}

// createProject installs the project described by form. Rejected forms
// leave every window and the session untouched.
func (m *Model) createProject(form state.Form) tea.Cmd {
	project, closed, err := m.session.CreateProject(form)
	if err != nil {
		events.Project.Reject(form.Name, err)
		m.session.Notify(state.NoticeError, err.Error())
		return nil
	}
	events.Project.Create(project.Name, project.Source.Kind.String(), project.Source.Location)
	events.Pane.Reset(len(m.session.Panes().Leaves()))
	for _, entry := range closed {
		events.Window.Close(entry.Kind.String(), entry.Handle.Short(), false)
		m.closeHostWindow(entry.Handle)
	}
	m.newProject = nil
	if h, ok := m.session.Windows().Find(window.KindMain); ok {
		m.focusWindow(h)
	}
	m.settings.Remember(settings.Recent{
		Name:     project.Name,
		Kind:     project.Source.Kind.String(),
		Location: project.Source.Location,
		OpenedAt: project.OpenedAt,
	})
	m.saveSettings()
	m.recent.SetItems(recentItems(m.settings.Recent))
	m.files.SetItems(nil)
	m.focusPane = firstPane(m)
	m.session.Notify(state.NoticeInfo, fmt.Sprintf("Opened %s", project.Name))
	return m.startWatcher(project.RootPath())
}

func (m *Model) closeProject() {
	project, ok := m.session.Project()
	if !ok {
		return
	}
	m.session.CloseProject()
	m.stopWatcher()
	m.files.SetItems(nil)
	if outs := m.session.CloseWindowKind(window.KindProjectSettings); len(outs) > 0 {
		for _, out := range outs {
			m.closeHostWindow(out.Entry.Handle)
		}
		if h, found := m.session.Windows().Find(window.KindMain); found {
			m.focusWindow(h)
		}
	}
	events.Project.Close(project.Name)
}

// reopenRecent creates a project from the recent entry under the cursor.
func (m *Model) reopenRecent() tea.Cmd {
	item, ok := m.recent.Current()
	if !ok {
		return nil
	}
	events.Filter.Select(recentListID, item.ID)
	for _, r := range m.settings.Recent {
		if recentID(r) != item.ID {
			continue
		}
		kind := state.SourceLocal
		if r.Kind == state.SourceRemote.String() {
			kind = state.SourceRemote
		}
		return m.createProject(state.Form{
			Name:   r.Name,
			Source: state.Source{Kind: kind, Location: r.Location},
		})
	}
	return nil
}

func recentID(r settings.Recent) string {
	return r.Kind + ":" + r.Location
}

func recentItems(list []settings.Recent) []uistate.Item {
	items := make([]uistate.Item, 0, len(list))
	for _, r := range list {
		detail := r.Location
		if r.Kind == state.SourceRemote.String() {
			detail = "box:" + r.Location
		}
		items = append(items, uistate.Item{ID: recentID(r), Label: r.Name, Detail: detail})
	}
	return items
}

// refreshFiles mirrors the tree store into the file list pane.
func (m *Model) refreshFiles() {
	tree := m.session.Tree()
	if msg := tree.Err(); msg != "" {
		m.files.SetItems(nil)
		return
	}
	m.files.SetItems(fileItems(tree.Entries()))
}

func fileItems(entries []filetree.Entry) []uistate.Item {
	items := make([]uistate.Item, 0, len(entries))
	for _, e := range entries {
		label := e.Name
		detail := ""
		if e.Dir {
			label += "/"
		} else {
			detail = humanize.Bytes(uint64(e.Size))
		}
		items = append(items, uistate.Item{ID: e.Name, Label: label, Detail: detail})
	}
	return items
}

func firstPane(m *Model) layout.Pane {
	leaves := m.session.Panes().Leaves()
	if len(leaves) == 0 {
		return m.focusPane
	}
	return leaves[0].Content
}

func projectTitle(p state.Project) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "Project"
	}
	return name
}
