package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Tab", "Cycle panel focus"},
		{"Ctrl+E", "Open query console"},
		{"a", "Add connection"},
		{"r, F5", "Reload current view"},
	}
}

// GetNavigationKeys returns navigation key bindings
func GetNavigationKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/↓", "Move selection"},
		{"Enter", "Connect / load rows / apply filter"},
		{"Space", "Expand or collapse object details"},
		{"f", "Focus schema search"},
		{"Esc", "Clear search / leave field"},
	}
}

// GetDataKeys returns data panel key bindings
func GetDataKeys() []KeyBinding {
	return []KeyBinding{
		{"Ctrl+N", "Next page"},
		{"Ctrl+P", "Previous page"},
		{"e", "Export page as CSV"},
		{"j", "Export page as JSON"},
		{"y", "Copy page as CSV to clipboard"},
		{"Ctrl+X", "Clear WHERE and ORDER BY"},
	}
}

// GetConsoleKeys returns query console key bindings
func GetConsoleKeys() []KeyBinding {
	return []KeyBinding{
		{"F5, Ctrl+R", "Execute query"},
		{"↑/↓", "Walk query history"},
		{"Esc", "Close console"},
	}
}

// Render creates the help view
func Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75")).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("dbrowse - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []KeyBinding
	}{
		{"Global", GetGlobalKeys()},
		{"Navigation", GetNavigationKeys()},
		{"Data", GetDataKeys()},
		{"Console", GetConsoleKeys()},
	}
	for _, section := range sections {
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, kb := range section.keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(width - 4).
		Height(height - 4)

	return boxStyle.Render(b.String())
}
