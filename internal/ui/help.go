package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// Pager shows arbitrary text full screen. PagerNavigator implements it.
type Pager interface {
	Show(content string) error
}

// RenderHelpContent generates the key reference shown in the pager
func RenderHelpContent(basePath string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(k, desc string) string {
		return fmt.Sprintf("  %-12s %s\n", keyStyle.Render(k), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("SafeLogist Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Searching"))
	help.WriteString("\n")
	help.WriteString(line("type", "Search companies by name (2+ characters)"))
	help.WriteString(line("enter", "Open the full search page for the query"))
	help.WriteString(line("click", "[ Search ] does the same"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	help.WriteString(line("↓ / ctrl+n", "Next result"))
	help.WriteString(line("↑ / ctrl+p", "Previous result, back to the field"))
	help.WriteString(line("enter", "Open the highlighted company"))
	help.WriteString(line("click", "Open the clicked company"))
	help.WriteString(line("esc", "Close the results"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("f1", "Toggle this help"))
	help.WriteString(line("esc", "Quit when no results are open"))
	help.WriteString(line("ctrl+c", "Quit"))
	help.WriteString("\n")

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Pages open under " + basePath))
	help.WriteString("\n")

	return help.String()
}
