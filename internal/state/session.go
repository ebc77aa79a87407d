// Package state holds the session aggregate. Only the UI update loop
// mutates a Session; collaborators receive copies.
package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/tagmaster/internal/auth"
	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/window"
)

type Screen int

const (
	ScreenHome Screen = iota
	ScreenProject
)

func (s Screen) String() string {
	if s == ScreenProject {
		return "project"
	}
	return "home"
}

// Session is the aggregate root of the running program.
type Session struct {
	screen  Screen
	project *Project
	panes   *layout.Tree
	windows *window.Registry
	token   *auth.Token
	form    *Form
	notices []Notice
	tree    TreeStore
	now     func() time.Time
}

// NewSession returns a session on the Home screen with a single pane.
func NewSession() *Session {
	return &Session{
		screen:  ScreenHome,
		panes:   layout.New(layout.PaneFileList),
		windows: window.NewRegistry(),
		tree:    NewTreeStore(),
		now:     time.Now,
	}
}

// SetClock replaces the time source.
func (s *Session) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Session) Now() time.Time {
	return s.now()
}

func (s *Session) Screen() Screen {
	return s.screen
}

func (s *Session) Project() (Project, bool) {
	if s.project == nil {
		return Project{}, false
	}
	return *s.project, true
}

func (s *Session) HasProject() bool {
	return s.project != nil
}

// Panes is the live layout tree. Callers must not retain it across updates.
func (s *Session) Panes() *layout.Tree {
	return s.panes
}

// Windows is the live registry. Callers must not retain it across updates.
func (s *Session) Windows() *window.Registry {
	return s.windows
}

func (s *Session) Tree() TreeStore {
	return s.tree
}

func (s *Session) Token() (auth.Token, bool) {
	if s.token == nil {
		return auth.Token{}, false
	}
	return *s.token, true
}

// LoggedIn reports whether a usable token is held.
func (s *Session) LoggedIn() bool {
	return s.token != nil && s.token.Valid(s.now())
}

// RequestScreen moves to target. Project without an active project
// resolves to Home.
func (s *Session) RequestScreen(target Screen) Screen {
	if target == ScreenProject && s.project == nil {
		target = ScreenHome
	}
	s.screen = target
	return target
}

// CloseProject drops the active project. It reports whether one was open.
func (s *Session) CloseProject() bool {
	had := s.project != nil
	s.project = nil
	s.screen = ScreenHome
	s.tree.Clear()
	return had
}

// Form returns a copy of the pending new-project form.
func (s *Session) Form() (Form, bool) {
	if s.form == nil {
		return Form{}, false
	}
	return *s.form, true
}

// BeginForm creates the form buffer if none exists.
func (s *Session) BeginForm() {
	if s.form == nil {
		s.form = &Form{}
	}
}

func (s *Session) DiscardForm() {
	s.form = nil
}

// EditForm applies fn to the pending form. It reports false without a form.
func (s *Session) EditForm(fn func(*Form)) bool {
	if s.form == nil || fn == nil {
		return false
	}
	fn(s.form)
	return true
}

// ApplyPickedFolder stores a picker result as a local source. Cancelled
// picks and picks arriving after the form closed change nothing.
func (s *Session) ApplyPickedFolder(path string, ok bool) bool {
	path = strings.TrimSpace(path)
	if !ok || path == "" || s.form == nil {
		return false
	}
	s.form.Source = Source{Kind: SourceLocal, Location: path}
	return true
}

// CheckForm reports whether the pending form can create a project.
func (s *Session) CheckForm() error {
	if s.form == nil {
		return ErrEmptyName
	}
	return s.form.Check(s.token, s.now())
}

// CreateProject installs a project built from f. On success any previous
// project is torn down, the panes are reset to the canonical layout, the
// form is cleared and all new-project windows are removed from the
// registry; the removed entries are returned so the host can close them.
func (s *Session) CreateProject(f Form) (Project, []window.Entry, error) {
	if err := f.Check(s.token, s.now()); err != nil {
		return Project{}, nil, err
	}
	s.CloseProject()
	p := Project{
		Name:     strings.TrimSpace(f.Name),
		Source:   Source{Kind: f.Source.Kind, Location: strings.TrimSpace(f.Source.Location)},
		OpenedAt: s.now(),
	}
	s.project = &p
	s.panes.Reset(layout.Canonical())
	s.form = nil
	closed := s.windows.CloseKind(window.KindNewProject)
	s.screen = ScreenProject
	return p, closed, nil
}

// CloseOutcome describes what closing a window did.
type CloseOutcome struct {
	Entry window.Entry
	Known bool
	// Exit is set when the Main window closed.
	Exit bool
	// Discarded lists the other windows dropped with Main.
	Discarded []window.Entry
}

// CloseWindow removes the window h. Unknown handles are a no-op.
func (s *Session) CloseWindow(h host.Handle) CloseOutcome {
	entry, ok := s.windows.Close(h)
	if !ok {
		return CloseOutcome{}
	}
	out := CloseOutcome{Entry: entry, Known: true}
	switch entry.Kind {
	case window.KindMain:
		s.CloseProject()
		s.form = nil
		out.Exit = true
		out.Discarded = s.windows.Entries()
		for _, other := range out.Discarded {
			s.windows.Close(other.Handle)
		}
	case window.KindNewProject:
		if s.windows.Count(window.KindNewProject) == 0 && !s.windows.Pending(window.KindNewProject) {
			s.form = nil
		}
	case window.KindProgramSettings, window.KindProjectSettings:
	}
	return out
}

// CloseWindowKind closes every window of kind.
func (s *Session) CloseWindowKind(kind window.Kind) []CloseOutcome {
	var outs []CloseOutcome
	for {
		h, ok := s.windows.Find(kind)
		if !ok {
			return outs
		}
		out := s.CloseWindow(h)
		outs = append(outs, out)
		if out.Exit {
			return outs
		}
	}
}

// ApplyLogin records a completed login. Errors leave the token untouched.
func (s *Session) ApplyLogin(tok auth.Token, err error) {
	if err != nil {
		s.Notify(NoticeError, err.Error())
		return
	}
	s.token = &tok
	s.Notify(NoticeInfo, "Logged in successfully")
}

// Logout drops the token. It reports whether one was held.
func (s *Session) Logout() bool {
	had := s.token != nil
	s.token = nil
	return had
}

func (s *Session) Notify(level NoticeLevel, text string) {
	s.notices = appendNotice(s.notices, Notice{Level: level, Text: text, At: s.now()})
}

func (s *Session) Notices() []Notice {
	if len(s.notices) == 0 {
		return nil
	}
	dup := make([]Notice, len(s.notices))
	copy(dup, s.notices)
	return dup
}

func (s *Session) LastNotice() (Notice, bool) {
	if len(s.notices) == 0 {
		return Notice{}, false
	}
	return s.notices[len(s.notices)-1], true
}

// Invariant returns the first broken session invariant, if any.
func (s *Session) Invariant() error {
	if s.screen == ScreenProject && s.project == nil {
		return fmt.Errorf("project screen without project")
	}
	if err := s.panes.Validate(); err != nil {
		return fmt.Errorf("panes: %w", err)
	}
	for _, kind := range window.Kinds {
		if kind.Singleton() && s.windows.Count(kind) > 1 {
			return fmt.Errorf("%d %s windows registered", s.windows.Count(kind), kind)
		}
	}
	if s.form != nil && s.windows.Count(window.KindNewProject) == 0 && !s.windows.Pending(window.KindNewProject) {
		return fmt.Errorf("new project form without window")
	}
	if len(s.notices) > MaxNotices {
		return fmt.Errorf("%d notices retained", len(s.notices))
	}
	return nil
}
