package ui

import (
	"strings"

	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/window"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldLocation
	fieldBrowse
	fieldCreate
	projectFieldCount
)

const (
	fieldKey = iota
	fieldSecret
	fieldLogin
	settingsFieldCount
)

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = width
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// projectForm holds the widgets of the new-project windows. The values
// themselves live in the session form.
type projectForm struct {
	name     textinput.Model
	location textinput.Model
	kind     state.SourceKind
	focus    int
}

func newProjectForm() *projectForm {
	f := &projectForm{
		name:     newInput("My project", 40),
		location: newInput("/path/to/folder", 40),
	}
	f.setFocus(fieldName)
	return f
}

func (f *projectForm) setFocus(idx int) {
	f.focus = (idx + projectFieldCount) % projectFieldCount
	f.name.Blur()
	f.location.Blur()
	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldLocation:
		f.location.Focus()
	}
}

func (f *projectForm) values() state.Form {
	return state.Form{
		Name:   f.name.Value(),
		Source: state.Source{Kind: f.kind, Location: strings.TrimSpace(f.location.Value())},
	}
}

func (m *Model) beginProjectForm() {
	if _, ok := m.session.Form(); !ok {
		events.Project.FormOpen()
	}
	m.session.BeginForm()
	if m.newProject == nil {
		m.newProject = newProjectForm()
		m.syncProjectFormFromSession()
	}
}

// dropProjectFormIfOrphaned discards the form once no new-project window is
// open or pending.
func (m *Model) dropProjectFormIfOrphaned() {
	reg := m.session.Windows()
	if reg.Count(window.KindNewProject) > 0 || reg.Pending(window.KindNewProject) {
		return
	}
	if _, ok := m.session.Form(); ok {
		m.session.DiscardForm()
	}
	if m.newProject != nil {
		events.Project.FormDiscard()
	}
	m.newProject = nil
}

func (m *Model) syncProjectFormFromSession() {
	form, ok := m.session.Form()
	if !ok || m.newProject == nil {
		return
	}
	m.newProject.name.SetValue(form.Name)
	m.newProject.location.SetValue(form.Source.Location)
	m.newProject.kind = form.Source.Kind
}

func (m *Model) syncSessionFromProjectForm() {
	if m.newProject == nil {
		return
	}
	values := m.newProject.values()
	m.session.EditForm(func(f *state.Form) { *f = values })
}

func (m *Model) handleNewProjectKey(msg tea.KeyMsg) tea.Cmd {
	f := m.newProject
	if f == nil {
		return nil
	}
	switch {
	case keyMatches(msg, keys.NextField):
		f.setFocus(f.focus + 1)
		return nil
	case keyMatches(msg, keys.PrevField):
		f.setFocus(f.focus - 1)
		return nil
	case keyMatches(msg, keys.ToggleKind):
		if f.kind == state.SourceLocal {
			f.kind = state.SourceRemote
		} else {
			f.kind = state.SourceLocal
		}
		m.syncSessionFromProjectForm()
		return nil
	case keyMatches(msg, keys.Browse):
		return m.pickFolder()
	case keyMatches(msg, keys.Submit):
		switch f.focus {
		case fieldBrowse:
			return m.pickFolder()
		case fieldCreate:
			return m.createProjectFromForm()
		default:
			f.setFocus(f.focus + 1)
			return nil
		}
	}
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldLocation:
		f.location, cmd = f.location.Update(msg)
	}
	m.syncSessionFromProjectForm()
	return cmd
}

// settingsForm holds the program settings inputs.
type settingsForm struct {
	key    textinput.Model
	secret textinput.Model
	focus  int
}

func newSettingsForm(boxKey string) *settingsForm {
	f := &settingsForm{
		key:    newInput("client id", 36),
		secret: newInput("client secret", 36),
	}
	f.secret.EchoMode = textinput.EchoPassword
	f.secret.EchoCharacter = '•'
	f.key.SetValue(boxKey)
	f.setFocus(fieldKey)
	return f
}

func (f *settingsForm) setFocus(idx int) {
	f.focus = (idx + settingsFieldCount) % settingsFieldCount
	f.key.Blur()
	f.secret.Blur()
	switch f.focus {
	case fieldKey:
		f.key.Focus()
	case fieldSecret:
		f.secret.Focus()
	}
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	f := m.program
	switch {
	case keyMatches(msg, keys.NextField):
		f.setFocus(f.focus + 1)
		return nil
	case keyMatches(msg, keys.PrevField):
		f.setFocus(f.focus - 1)
		return nil
	case keyMatches(msg, keys.LogoutToken):
		m.logout()
		return nil
	case keyMatches(msg, keys.Submit):
		if f.focus == fieldLogin {
			return m.submitLogin()
		}
		f.setFocus(f.focus + 1)
		return nil
	}
	var cmd tea.Cmd
	switch f.focus {
	case fieldKey:
		f.key, cmd = f.key.Update(msg)
	case fieldSecret:
		f.secret, cmd = f.secret.Update(msg)
	}
	return cmd
}

func (m *Model) handleProjectSettingsKey(msg tea.KeyMsg) tea.Cmd {
	if keyMatches(msg, keys.Submit) && m.session.HasProject() {
		// closing the project also closes this window
		m.closeProject()
	}
	return nil
}
