package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/tagmaster/internal/format/table"
	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/layout"
	"github.com/atomicstack/tagmaster/internal/state"
	"github.com/atomicstack/tagmaster/internal/ui/command"
	uistate "github.com/atomicstack/tagmaster/internal/ui/state"
	"github.com/atomicstack/tagmaster/internal/window"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// Main window rows: window strip, screen tabs, panes, status line.
const (
	stripRow   = 0
	tabsRow    = 1
	bodyTop    = 2
	chromeRows = 3
)

type tabSpan struct {
	x0, x1 int
	screen state.Screen
	handle host.Handle
}

func render(style *lipgloss.Style, s string) string {
	if style == nil || s == "" {
		return s
	}
	return style.Render(s)
}

const (
	attributionURL = "https://cejce.berkeley.edu/geneq"
	licenceURL     = "https://www.gnu.org/licenses/gpl-3.0.en.html#license-text"
	sourceURL      = "https://github.com/Sycration/TagMaster/tree/main"
)

// link renders label as an OSC 8 hyperlink; terminals without support show
// the plain label.
func link(url, label string) string {
	return ansi.SetHyperlink(url) + render(styles.Link, label) + ansi.ResetHyperlink()
}

func homeFooter() []string {
	return []string{
		render(styles.Muted, "This software is licenced under the ") + link(licenceURL, "GNU General Public Licence v.3"),
		render(styles.Muted, "Source code is available on ") + link(sourceURL, "GitHub"),
	}
}

// View implements tea.Model. It shows the focused window.
func (m *Model) View() string {
	if m.exiting {
		return ""
	}
	if m.focus == host.Nil {
		w, h := m.size()
		return strings.Join(fitLines(render(styles.Muted, "Opening…"), w, h), "\n")
	}
	return m.ViewFor(m.focus)
}

// ViewFor renders window h as if it were focused. Unknown handles render
// nothing.
func (m *Model) ViewFor(h host.Handle) string {
	kind, ok := m.session.Windows().Route(h)
	if !ok {
		return ""
	}
	w, height := m.size()
	lines := make([]string, 0, height)
	lines = append(lines, m.windowStrip(h, w))

	bodyHeight := height - 2
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	var body string
	switch kind {
	case window.KindMain:
		body = m.viewMain(w, bodyHeight)
	default:
		body = m.viewDialog(kind, w, bodyHeight)
	}
	lines = append(lines, fitLines(body, w, bodyHeight)...)
	lines = append(lines, m.statusLine(kind, w))
	return strings.Join(lines[:min(len(lines), height)], "\n")
}

func (m *Model) windowSpans(w int) []tabSpan {
	var spans []tabSpan
	x := 0
	for _, entry := range m.session.Windows().Entries() {
		width := lipgloss.Width(render(styles.WindowTab, entry.Kind.Title()))
		if x+width > w {
			break
		}
		spans = append(spans, tabSpan{x0: x, x1: x + width, handle: entry.Handle})
		x += width + 1
	}
	return spans
}

func (m *Model) windowStrip(active host.Handle, w int) string {
	parts := make([]string, 0, m.session.Windows().Len())
	for _, entry := range m.session.Windows().Entries() {
		style := styles.WindowTab
		if entry.Handle == active {
			style = styles.ActiveWindowTab
		}
		parts = append(parts, render(style, entry.Kind.Title()))
	}
	return ansi.Truncate(strings.Join(parts, " "), w, "")
}

func (m *Model) screenSpans() []tabSpan {
	spans := []tabSpan{}
	x := 0
	add := func(label string, screen state.Screen) {
		width := lipgloss.Width(render(styles.Tab, label))
		spans = append(spans, tabSpan{x0: x, x1: x + width, screen: screen})
		x += width + 1
	}
	add("Home", state.ScreenHome)
	if p, ok := m.session.Project(); ok {
		add(projectTitle(p), state.ScreenProject)
	}
	return spans
}

func (m *Model) screenTabs(w int) string {
	parts := []string{}
	for _, span := range m.screenSpans() {
		label := "Home"
		if span.screen == state.ScreenProject {
			p, _ := m.session.Project()
			label = projectTitle(p)
		}
		style := styles.Tab
		if span.screen == m.session.Screen() {
			style = styles.ActiveTab
		}
		parts = append(parts, render(style, label))
	}
	return ansi.Truncate(strings.Join(parts, " "), w, "")
}

// paneArea is the project body inside the Main window.
func (m *Model) paneArea() (x, y, w, h int) {
	w, h = m.size()
	h -= chromeRows
	if h < 0 {
		h = 0
	}
	return 0, bodyTop, w, h
}

func (m *Model) viewMain(w, h int) string {
	lines := []string{m.screenTabs(w)}
	if m.session.Screen() == state.ScreenProject {
		_, _, pw, ph := m.paneArea()
		lines = append(lines, m.viewPanes(pw, ph))
	} else {
		lines = append(lines, m.viewHome(w, h-1))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewHome(w, h int) string {
	footer := homeFooter()
	lines := []string{
		render(styles.Title, "TagMaster"),
		render(styles.Muted, "A project by ") + link(attributionURL, "GenEq UC Berkeley"),
		"",
		render(styles.Button, "Create Project...") + " " + render(styles.Muted, keys.NewProject.Help().Key),
		"",
		render(styles.Label, "Recent Projects"),
	}
	filter := render(styles.FilterPrompt, "» ")
	if m.recent.Filter == "" {
		filter += render(styles.FilterPlaceholder, "type to filter")
	} else {
		filter += render(styles.Filter, m.recent.Filter)
	}
	lines = append(lines, filter)

	list := *m.recent
	if len(list.Items) == 0 {
		msg := "(no recent projects)"
		if list.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", list.Filter)
		}
		lines = append(lines, render(styles.Muted, msg))
	} else {
		lines = append(lines, listLines(&list, w, h-len(lines)-len(footer)-1, true)...)
	}
	// the footer sits on the last rows when they are free
	for len(lines) < h-len(footer) {
		lines = append(lines, "")
	}
	return strings.Join(append(lines, footer...), "\n")
}

// listLines renders the visible part of list as two aligned columns.
func listLines(list *uistate.List, w, maxRows int, focused bool) []string {
	if maxRows <= 0 {
		return nil
	}
	visible := list.Visible(maxRows)
	rows := make([][]string, 0, len(visible))
	for _, item := range visible {
		rows = append(rows, []string{item.Label, item.Detail})
	}
	formatted := table.Fit(rows, []table.Alignment{table.AlignLeft, table.AlignRight}, w-2)
	out := make([]string, 0, len(formatted))
	for i, line := range formatted {
		if focused && list.ViewportOffset+i == list.Cursor {
			out = append(out, render(styles.SelectedItem, "> "+line))
			continue
		}
		out = append(out, render(styles.Item, "  "+line))
	}
	return out
}

type segment struct {
	x    int
	text string
}

// viewPanes draws every leaf as a bordered box and stitches the boxes
// together row by row.
func (m *Model) viewPanes(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	rows := make([][]segment, h)
	for _, lr := range m.session.Panes().LeafRects(w, h) {
		r := lr.Rect
		if r.Empty() {
			continue
		}
		box := fitLines(m.paneBox(lr.Content, r), r.W, r.H)
		for i, line := range box {
			if y := r.Y + i; y >= 0 && y < h {
				if pad := r.W - ansi.StringWidth(line); pad > 0 {
					line += strings.Repeat(" ", pad)
				}
				rows[y] = append(rows[y], segment{x: r.X, text: line})
			}
		}
	}
	out := make([]string, h)
	for y, segs := range rows {
		sort.Slice(segs, func(i, j int) bool { return segs[i].x < segs[j].x })
		var b strings.Builder
		for _, seg := range segs {
			b.WriteString(seg.text)
		}
		out[y] = b.String()
	}
	return strings.Join(out, "\n")
}

func (m *Model) paneBox(content layout.Pane, r layout.Rect) string {
	if r.W < 2 || r.H < 2 {
		return ""
	}
	innerW, innerH := r.W-2, r.H-2
	style := styles.Pane
	if content == m.focusPane {
		style = styles.FocusedPane
	}
	lines := []string{render(styles.PaneTitle, ansi.Truncate(content.Title(), innerW, "…"))}
	lines = append(lines, m.paneContent(content, innerW, innerH-1)...)
	body := strings.Join(fitLines(strings.Join(lines, "\n"), innerW, innerH), "\n")
	if style == nil {
		return body
	}
	return style.Width(innerW).Height(innerH).Render(body)
}

func (m *Model) paneContent(content layout.Pane, w, h int) []string {
	if h <= 0 {
		return nil
	}
	project, _ := m.session.Project()
	switch content {
	case layout.PaneFileList:
		if project.RootPath() == "" {
			return []string{render(styles.Muted, "Remote folder: "+project.Source.Location)}
		}
		tree := m.session.Tree()
		if msg := tree.Err(); msg != "" {
			return []string{render(styles.Error, msg)}
		}
		if tree.Root() == "" {
			return []string{render(styles.Muted, "Loading…")}
		}
		list := *m.files
		if len(list.Items) == 0 {
			return []string{render(styles.Muted, "(empty folder)")}
		}
		return listLines(&list, w, h, m.focusPane == layout.PaneFileList)
	case layout.PaneDataEntry:
		item, ok := m.files.Current()
		if !ok {
			return []string{render(styles.Muted, "Select a file to tag.")}
		}
		rows := [][]string{{"Name", item.ID}}
		for _, e := range m.session.Tree().Entries() {
			if e.Name != item.ID {
				continue
			}
			if !e.Dir {
				rows = append(rows, []string{"Size", humanize.Bytes(uint64(e.Size))})
			}
			if !e.ModTime.IsZero() {
				rows = append(rows, []string{"Modified", humanize.RelTime(e.ModTime, m.session.Now(), "ago", "from now")})
			}
		}
		return table.Fit(rows, []table.Alignment{table.AlignLeft, table.AlignLeft}, w)
	case layout.PaneViewer:
		item, ok := m.files.Current()
		if !ok {
			return []string{render(styles.Muted, "No file selected")}
		}
		return []string{render(styles.Info, item.Label)}
	}
	return nil
}

func (m *Model) viewDialog(kind window.Kind, w, h int) string {
	var lines []string
	switch kind {
	case window.KindNewProject:
		lines = m.newProjectLines()
	case window.KindProgramSettings:
		lines = m.settingsLines()
	case window.KindProjectSettings:
		lines = m.projectSettingsLines()
	}
	sizing := kind.Sizing()
	dw, dh := min(sizing.Width, w), min(sizing.Height, h)
	if dw < 4 || dh < 2 {
		return strings.Join(lines, "\n")
	}
	inner := strings.Join(fitLines(strings.Join(lines, "\n"), dw-4, dh-2), "\n")
	dialog := styles.Dialog.Width(dw - 2).Height(dh - 2).Render(inner)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dialog)
}

func button(label string, focused bool) string {
	if focused {
		return render(styles.FocusedButton, label)
	}
	return render(styles.Button, label)
}

func (m *Model) newProjectLines() []string {
	lines := []string{render(styles.Title, window.KindNewProject.Title()), ""}
	f := m.newProject
	if f == nil {
		return append(lines, render(styles.Muted, "No project form"))
	}
	lines = append(lines,
		render(styles.Label, "Name      ")+f.name.View(),
		render(styles.Label, "Source    ")+f.kind.String()+render(styles.Muted, "  ("+keys.ToggleKind.Help().Key+")"),
		render(styles.Label, "Location  ")+f.location.View(),
		"",
		button("Browse...", f.focus == fieldBrowse)+" "+button("Create", f.focus == fieldCreate),
		"",
	)
	if err := m.session.CheckForm(); err != nil {
		lines = append(lines, render(styles.Error, err.Error()))
	} else {
		lines = append(lines, render(styles.Info, "Ready to create"))
	}
	return lines
}

func (m *Model) settingsLines() []string {
	f := m.program
	lines := []string{
		render(styles.Title, window.KindProgramSettings.Title()),
		"",
		render(styles.Label, "Box key     ") + f.key.View(),
		render(styles.Label, "Box secret  ") + f.secret.View(),
		"",
		button("Log in", f.focus == fieldLogin),
		"",
	}
	status := "Not logged in"
	if tok, ok := m.session.Token(); ok {
		switch {
		case !m.session.LoggedIn():
			status = "Token expired"
		case tok.Expiry.IsZero():
			status = "Logged in"
		default:
			status = "Logged in, expires " + humanize.RelTime(tok.Expiry, m.session.Now(), "ago", "from now")
		}
	}
	if n := m.bus.Pending(command.KindLogin); n > 0 {
		status = fmt.Sprintf("Logging in (%d)", n)
	}
	return append(lines, render(styles.Status, status))
}

func (m *Model) projectSettingsLines() []string {
	lines := []string{render(styles.Title, window.KindProjectSettings.Title()), ""}
	p, ok := m.session.Project()
	if !ok {
		return append(lines, render(styles.Muted, "No project is open"))
	}
	rows := [][]string{
		{"Name", p.Name},
		{"Source", p.Source.Kind.String()},
		{"Location", p.Source.Location},
		{"Opened", p.OpenedAt.Format("2006-01-02 15:04")},
	}
	lines = append(lines, table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})...)
	return append(lines, "", button("Close project", true))
}

func (m *Model) statusLine(kind window.Kind, w int) string {
	if m.verbose {
		if running := m.bus.InFlight(); len(running) > 0 {
			labels := make([]string, 0, len(running))
			for _, task := range running {
				labels = append(labels, fmt.Sprintf("#%d %s", task.ID, task.Label))
			}
			return render(styles.Status, ansi.Truncate("Running: "+strings.Join(labels, ", "), w, "…"))
		}
	}
	if n, ok := m.session.LastNotice(); ok {
		style := styles.Info
		if n.Level == state.NoticeError {
			style = styles.Error
		}
		return render(style, ansi.Truncate(n.Text, w, "…"))
	}
	hm := m.help
	hm.Width = w
	return hm.ShortHelpView(helpFor(kind, m.session.Screen()))
}

func helpFor(kind window.Kind, screen state.Screen) []key.Binding {
	switch kind {
	case window.KindMain:
		if screen == state.ScreenProject {
			return projectHelp()
		}
		return homeHelp()
	case window.KindNewProject:
		return newProjectHelp()
	case window.KindProgramSettings:
		return settingsHelp()
	default:
		return formHelp()
	}
}

// fitLines cuts or pads s to exactly h lines no wider than w cells.
func fitLines(s string, w, h int) []string {
	if h <= 0 {
		return nil
	}
	src := strings.Split(s, "\n")
	out := make([]string, h)
	for i := range out {
		if i < len(src) {
			out[i] = ansi.Truncate(src[i], w, "")
		}
	}
	return out
}
