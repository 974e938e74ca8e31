package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared across views.
type Styles struct {
	Header        lipgloss.Style
	ViewIndicator lipgloss.Style
	Error         lipgloss.Style
	Status        lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// DefaultStyles returns the standard color scheme. Colors are chosen
// to read on both dark and light terminals.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#61AFEF")).
			Padding(0, 1),
		ViewIndicator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5C6370")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56B6C2")),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ABB2BF")),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5C6370")),
		HelpSeparator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3E4451")),
	}
}
