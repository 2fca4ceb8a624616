package tui

import "github.com/charmbracelet/lipgloss"

// styles groups the lipgloss styles the editor renders with.
type styles struct {
	OffsetCol lipgloss.Style
	Cursor    lipgloss.Style
	Editing   lipgloss.Style
	Selection lipgloss.Style
	Match     lipgloss.Style
	PaneTitle lipgloss.Style
	StatusBar lipgloss.Style
	Dirty     lipgloss.Style
	Toast     lipgloss.Style
	Debug     lipgloss.Style
	Prompt    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		OffsetCol: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Editing:   lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color("11")),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("17")),
		Match:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		PaneTitle: lipgloss.NewStyle().Bold(true),
		StatusBar: lipgloss.NewStyle().Reverse(true),
		Dirty:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Debug:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}
