package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Toggle            *lipgloss.Style
	ToggleActive      *lipgloss.Style
	Close             *lipgloss.Style
	Item              *lipgloss.Style
	ItemIndicator     *lipgloss.Style
	FocusedIndicator  *lipgloss.Style
	FocusedItem       *lipgloss.Style
	Branch            *lipgloss.Style
	Back              *lipgloss.Style
	BackRegion        *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	Search            *lipgloss.Style
	SearchPrompt      *lipgloss.Style
	SearchPlaceholder *lipgloss.Style
	SearchMatch       *lipgloss.Style
	Panel             *lipgloss.Style
}

var defaultStyles = Styles{
	Toggle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Bold(true),
	),
	ToggleActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Close: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	FocusedIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	FocusedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Branch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Back: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	),
	BackRegion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Search: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	SearchPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SearchMatch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
