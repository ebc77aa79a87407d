package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit            key.Binding
	CycleWindow     key.Binding
	CloseWindow     key.Binding
	NewProject      key.Binding
	ProgramSettings key.Binding
	ProjectSettings key.Binding
	HomeTab         key.Binding
	ProjectTab      key.Binding
	CloseProject    key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	NextPane key.Binding
	PrevPane key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	SwapPane key.Binding

	ClosePane   key.Binding
	ResetLayout key.Binding

	NextField   key.Binding
	PrevField   key.Binding
	Submit      key.Binding
	ToggleKind  key.Binding
	Browse      key.Binding
	LogoutToken key.Binding
}

var keys = keyMap{
	Quit:            key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	CycleWindow:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next window")),
	CloseWindow:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	NewProject:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new project")),
	ProgramSettings: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "settings")),
	ProjectSettings: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "project settings")),
	HomeTab:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "home")),
	ProjectTab:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "project")),
	CloseProject:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "close project")),

	Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),

	NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
	PrevPane: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
	Grow:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "resize")),
	Shrink:   key.NewBinding(key.WithKeys("-", "_")),
	SwapPane: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "swap pane")),

	ClosePane:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "close pane")),
	ResetLayout: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset layout")),

	NextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	ToggleKind:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "local/remote")),
	Browse:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "browse")),
	LogoutToken: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
}

func homeHelp() []key.Binding {
	return []key.Binding{keys.Select, keys.NewProject, keys.ProgramSettings, keys.CycleWindow, keys.Quit}
}

func projectHelp() []key.Binding {
	return []key.Binding{keys.NextPane, keys.Grow, keys.SwapPane, keys.ClosePane, keys.ResetLayout, keys.ProjectSettings, keys.CloseProject, keys.Quit}
}

func formHelp() []key.Binding {
	return []key.Binding{keys.NextField, keys.Submit, keys.CloseWindow}
}

func newProjectHelp() []key.Binding {
	return []key.Binding{keys.NextField, keys.Browse, keys.ToggleKind, keys.Submit, keys.CloseWindow}
}

func settingsHelp() []key.Binding {
	return []key.Binding{keys.NextField, keys.Submit, keys.LogoutToken, keys.CloseWindow}
}
