package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel draws one bordered screen region: a bold title row followed by
// content clipped to the inner height. Clipping keeps overflowing content
// from pushing the panels below it, so rendered rows stay where the mouse
// hit-testing expects them.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Style   lipgloss.Style
}

// View renders the panel.
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	inner := p.Height
	var b strings.Builder
	if p.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(p.Title))
		inner--
	}
	for i, line := range strings.Split(p.Content, "\n") {
		if i >= inner {
			break
		}
		if p.Title != "" || i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}

	return p.Style.
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.RoundedBorder()).
		Render(b.String())
}
