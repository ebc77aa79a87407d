package ui

import (
	"context"
	"path/filepath"
	"reflect"
	"time"

	"github.com/atomicstack/tagmaster/internal/auth"
	"github.com/atomicstack/tagmaster/internal/backend"
	"github.com/atomicstack/tagmaster/internal/data/dispatcher"
	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/picker"
	"github.com/atomicstack/tagmaster/internal/settings"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/theme"
	"github.com/atomicstack/tagmaster/internal/ui/command"
	uistate "github.com/atomicstack/tagmaster/internal/ui/state"
	"github.com/atomicstack/tagmaster/internal/window"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// WatchFunc starts a file-tree watcher for a project root.
type WatchFunc func(root string) *backend.Watcher

// Options wires the model to its collaborators. Nil collaborators disable
// the matching feature.
type Options struct {
	Context   context.Context
	Width     int
	Height    int
	Verbose   bool
	Host      host.Host
	Fetcher   auth.Fetcher
	Picker    picker.Picker
	Watch     WatchFunc
	ConfigDir string
	Settings  settings.Settings
	Now       func() time.Time
}

// Model is the single writer of the session. Every collaborator result
// comes back through Update as a message.
type Model struct {
	session    *state.Session
	bus        *command.Bus
	host       host.Host
	fetcher    auth.Fetcher
	picker     picker.Picker
	watch      WatchFunc
	watcher    *backend.Watcher
	dispatcher *dispatcher.Dispatcher

	configDir string
	settings  settings.Settings

	focus       host.Handle
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	verbose     bool

	recent     *uistate.List
	files      *uistate.List
	focusPane  layout.Pane
	drag       *dragState
	newProject *projectForm
	program    *settingsForm
	projectBtn int
	help       help.Model

	exiting  bool
	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model. The Main window is requested by Init.
func NewModel(opts Options) *Model {
	session := state.NewSession()
	if opts.Now != nil {
		session.SetClock(opts.Now)
	}
	m := &Model{
		session:    session,
		bus:        command.New(opts.Context),
		host:       opts.Host,
		fetcher:    opts.Fetcher,
		picker:     opts.Picker,
		watch:      opts.Watch,
		dispatcher: dispatcher.New(session.Tree()),
		configDir:  opts.ConfigDir,
		settings:   opts.Settings,
		files:      uistate.NewList(nil),
		focusPane:  layout.PaneFileList,
		help:       help.New(),
		verbose:    opts.Verbose,
	}
	m.recent = uistate.NewList(recentItems(opts.Settings.Recent))
	m.program = newSettingsForm(opts.Settings.BoxKey)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.openWindow(window.KindMain)}
	if wait := waitForHostEvent(m.host); wait != nil {
		cmds = append(cmds, wait)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Done{}):      m.handleTaskDoneMsg,
		reflect.TypeOf(hostEventMsg{}):      m.handleHostEventMsg,
		reflect.TypeOf(hostDoneMsg{}):       m.handleHostDoneMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

// Session exposes the session for inspection in tests and tooling.
func (m *Model) Session() *state.Session {
	return m.session
}

// Exiting reports whether the Main window has closed.
func (m *Model) Exiting() bool {
	return m.exiting
}

// Focused returns the window currently shown.
func (m *Model) Focused() host.Handle {
	return m.focus
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) credentialsPath() string {
	if m.configDir == "" {
		return ""
	}
	return filepath.Join(m.configDir, auth.CredentialsFile)
}

func (m *Model) settingsPath() string {
	if m.configDir == "" {
		return ""
	}
	return settings.Path(m.configDir)
}
