package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	Button       lipgloss.Style
	Dropdown     lipgloss.Style
	Row          lipgloss.Style
	RowCursor    lipgloss.Style
	RowStale     lipgloss.Style
	Match        lipgloss.Style
	Placeholder  lipgloss.Style
	Pending      lipgloss.Style
	Reviews      lipgloss.Style
	Help         lipgloss.Style
	StatusError  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Field: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		FieldFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Foreground(lipgloss.Color("33")).
			Bold(true),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Row:         lipgloss.NewStyle(),
		RowCursor:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		RowStale:    lipgloss.NewStyle().Faint(true),
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Reviews:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true).MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
