package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/atomicstack/tagmaster/internal/auth"
	"github.com/atomicstack/tagmaster/internal/logging"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/settings"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	errNoFetcher = errors.New("login is unavailable")
	errNoPicker  = errors.New("folder picker is unavailable")
)

type loginResultMsg struct {
	token auth.Token
	err   error
}

type folderPickedMsg struct {
	path string
	ok   bool
	err  error
}

// handleTaskDoneMsg applies a completed task. Results are applied in the
// order they arrive, whatever order they were issued in.
func (m *Model) handleTaskDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(command.Done)
	if !ok {
		return nil
	}
	task, ok := m.bus.Complete(done)
	if !ok {
		return nil
	}
	switch result := done.Msg.(type) {
	case windowOpenedMsg:
		return m.applyWindowOpened(result)
	case loginResultMsg:
		m.applyLogin(task.ID, result)
	case folderPickedMsg:
		m.applyFolderPicked(task.ID, result)
	}
	return nil
}

// submitLogin issues one login attempt. Earlier attempts keep running.
func (m *Model) submitLogin() tea.Cmd {
	key := strings.TrimSpace(m.program.key.Value())
	secret := strings.TrimSpace(m.program.secret.Value())
	if key != m.settings.BoxKey {
		m.settings.BoxKey = key
		m.saveSettings()
	}
	creds := auth.Credentials{Key: key, Secret: secret, StoragePath: m.credentialsPath()}
	fetcher := m.fetcher
	id, cmd := m.bus.Issue(command.KindLogin, "login", func(ctx context.Context) tea.Msg {
		if fetcher == nil {
			return loginResultMsg{err: errNoFetcher}
		}
		tok, err := fetcher.FetchToken(ctx, creds)
		return loginResultMsg{token: tok, err: err}
	})
	events.Auth.Submit(id, key)
	return cmd
}

func (m *Model) applyLogin(id uint64, result loginResultMsg) {
	events.Auth.Result(id, result.err)
	m.session.ApplyLogin(result.token, result.err)
}

func (m *Model) logout() {
	if m.session.Logout() {
		events.Auth.Logout()
		m.session.Notify(state.NoticeInfo, "Logged out")
	}
}

// pickFolder asks the OS for a project folder.
func (m *Model) pickFolder() tea.Cmd {
	if _, ok := m.session.Form(); !ok {
		return nil
	}
	p := m.picker
	id, cmd := m.bus.Issue(command.KindPicker, "pick folder", func(ctx context.Context) tea.Msg {
		if p == nil {
			return folderPickedMsg{err: errNoPicker}
		}
		path, ok, err := p.PickFolder(ctx)
		return folderPickedMsg{path: path, ok: ok, err: err}
	})
	events.Picker.Open(id)
	return cmd
}

func (m *Model) applyFolderPicked(id uint64, result folderPickedMsg) {
	if result.err != nil {
		events.Picker.Result(id, "", false, false)
		m.session.Notify(state.NoticeError, result.err.Error())
		return
	}
	applied := m.session.ApplyPickedFolder(result.path, result.ok)
	events.Picker.Result(id, result.path, result.ok, applied)
	if applied {
		m.syncProjectFormFromSession()
	}
}

func (m *Model) saveSettings() {
	path := m.settingsPath()
	if path == "" {
		return
	}
	if err := settings.Save(path, m.settings); err != nil {
		logging.Error(err)
	}
}
