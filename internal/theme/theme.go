package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title             *lipgloss.Style
	Tab               *lipgloss.Style
	ActiveTab         *lipgloss.Style
	WindowTab         *lipgloss.Style
	ActiveWindowTab   *lipgloss.Style
	Pane              *lipgloss.Style
	FocusedPane       *lipgloss.Style
	PaneTitle         *lipgloss.Style
	Dialog            *lipgloss.Style
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	Label             *lipgloss.Style
	Button            *lipgloss.Style
	FocusedButton     *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Muted             *lipgloss.Style
	Link              *lipgloss.Style
	Status            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	WindowTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")).Padding(0, 1),
	),
	ActiveWindowTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
	),
	Pane: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
	),
	FocusedPane: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("33")),
	),
	PaneTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Dialog: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 1),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")).Padding(0, 1),
	),
	FocusedButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Muted: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Link: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
