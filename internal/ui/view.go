package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/4nzor/dbrowse/internal/session"
	"github.com/4nzor/dbrowse/internal/ui/components"
	"github.com/4nzor/dbrowse/internal/ui/help"
)

const (
	topBarHeight = 1
	statusHeight = 3
)

// layout holds the computed panel rectangles for one frame. Rendering and
// mouse hit-testing both derive from it so clicks land where pixels are.
type layout struct {
	width, height int
	leftWidth     int
	contentTop    int
	contentHeight int
	connHeight    int // outer height of the connections panel
	schemaTop     int
	schemaHeight  int // outer height of the schema panel
}

func (a *App) layout() layout {
	l := layout{width: a.width, height: a.height}
	l.contentTop = topBarHeight
	l.contentHeight = a.height - topBarHeight - statusHeight
	if l.contentHeight < 10 {
		l.contentHeight = 10
	}

	l.leftWidth = a.width / 4
	if l.leftWidth < 24 {
		l.leftWidth = 24
	}
	if l.leftWidth > 40 {
		l.leftWidth = 40
	}

	l.connHeight = len(a.session.Connections()) + 3
	if l.connHeight < 5 {
		l.connHeight = 5
	}
	if l.connHeight > 10 {
		l.connHeight = 10
	}
	l.schemaTop = l.contentTop + l.connHeight
	l.schemaHeight = l.contentHeight - l.connHeight
	return l
}

func (a *App) schemaPanelHeight() int {
	return a.layout().schemaHeight
}

// View implements tea.Model
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	if a.showHelp {
		return help.Render(a.width, a.height)
	}

	l := a.layout()
	vm := a.session.BuildViewModel(a.width, l.schemaHeight)

	base := lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderTopBar(),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			lipgloss.JoinVertical(
				lipgloss.Left,
				a.renderConnections(vm, l),
				a.renderSchema(vm, l),
			),
			a.renderData(vm, l),
		),
		a.renderStatus(vm),
	)

	if a.showForm {
		a.form.Width = 52
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.form.View())
	}
	if vm.Console.Open {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.renderConsole(vm))
	}
	return base
}

func (a *App) renderTopBar() string {
	left := "dbrowse"
	right := a.session.ActiveConnectionLabel()
	if right == "" {
		right = "not connected"
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (a *App) renderConnections(vm session.ViewModel, l layout) string {
	var b strings.Builder
	for _, row := range vm.Connections {
		marker := "○ "
		style := lipgloss.NewStyle().Foreground(a.theme.InactiveConn)
		if row.Active {
			marker = "● "
			style = lipgloss.NewStyle().Foreground(a.theme.ActiveConn)
		}
		line := marker + row.Label
		if row.Selected {
			style = style.Background(a.theme.Selection).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if len(vm.Connections) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("press 'a' to add one"))
	}

	panel := components.Panel{
		Title:   "Connections",
		Content: strings.TrimRight(b.String(), "\n"),
		Width:   l.leftWidth - 2,
		Height:  l.connHeight - 2,
		Style:   a.panelStyle(vm.Focus == session.FocusConnections),
	}
	return panel.View()
}

func (a *App) renderSchema(vm session.ViewModel, l layout) string {
	var b strings.Builder
	b.WriteString(a.searchInput.View())
	b.WriteString("\n")

	for _, line := range vm.Schema.Lines {
		style := lipgloss.NewStyle()
		switch {
		case line.Detail:
			style = style.Foreground(a.theme.Metadata)
		case line.Weight == session.SizeLarge:
			style = style.Foreground(a.theme.ObjectLarge)
		case line.Weight == session.SizeMedium:
			style = style.Foreground(a.theme.ObjectMedium)
		default:
			style = style.Foreground(a.theme.ObjectSmall)
		}
		if line.Selected && !line.Detail {
			style = style.Background(a.theme.Selection).Bold(true)
		}
		b.WriteString(style.Render(line.Text))
		b.WriteString("\n")
	}
	if vm.Schema.Total == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("no objects"))
	}

	focused := vm.Focus == session.FocusSchemaList || vm.Focus == session.FocusSchemaSearch
	panel := components.Panel{
		Title:   fmt.Sprintf("Schema (%d)", vm.Schema.Total),
		Content: strings.TrimRight(b.String(), "\n"),
		Width:   l.leftWidth - 2,
		Height:  l.schemaHeight - 2,
		Style:   a.panelStyle(focused),
	}
	return panel.View()
}

func (a *App) renderData(vm session.ViewModel, l layout) string {
	rightWidth := l.width - l.leftWidth
	var b strings.Builder

	b.WriteString(a.orderInput.View())
	b.WriteString("\n")
	b.WriteString(a.whereInput.View())
	b.WriteString("\n")

	if vm.Data.Err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(a.theme.Error).Render(vm.Data.Err))
	} else {
		grid := components.Grid{
			Columns:  vm.Data.Columns,
			Cells:    vm.Data.Cells,
			MaxWidth: rightWidth - 4,
		}
		b.WriteString(grid.View())
	}

	focused := vm.Focus == session.FocusDataWhere || vm.Focus == session.FocusDataOrderBy
	panel := components.Panel{
		Title:   vm.Data.Header,
		Content: strings.TrimRight(b.String(), "\n"),
		Width:   rightWidth - 2,
		Height:  l.contentHeight - 2,
		Style:   a.panelStyle(focused),
	}
	return panel.View()
}

func (a *App) renderConsole(vm session.ViewModel) string {
	width := a.width * 3 / 4
	if width < 40 {
		width = 40
	}

	var b strings.Builder
	b.WriteString(a.consoleInput.View())
	b.WriteString("\n\n")

	if vm.Console.Err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(a.theme.Error).Render(vm.Console.Err))
	} else if len(vm.Console.Columns) > 0 {
		grid := components.Grid{
			Columns:  vm.Console.Columns,
			Cells:    vm.Console.Cells,
			MaxWidth: width - 4,
		}
		b.WriteString(grid.View())
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(vm.Console.Summary))
	} else {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("F5 to execute, ↑/↓ for history, Esc to close"))
	}

	panel := components.Panel{
		Title:   "Query Console",
		Content: b.String(),
		Width:   width,
		Height:  a.height * 2 / 3,
		Style:   a.panelStyle(true),
	}
	return panel.View()
}

func (a *App) renderStatus(vm session.ViewModel) string {
	lines := make([]string, statusHeight)
	for i, entry := range vm.Status {
		lines[i] = entry
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Foreground(a.theme.Metadata).
		Render(strings.Join(lines, "\n"))
}

func (a *App) panelStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().BorderForeground(a.theme.BorderFocused)
	}
	return lipgloss.NewStyle().BorderForeground(a.theme.Border)
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.showHelp || a.showForm || a.session.ConsoleOpen() {
		return a, nil
	}
	l := a.layout()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		a.wheel(-1, msg.X, msg.Y, l)
	case msg.Button == tea.MouseButtonWheelDown:
		a.wheel(1, msg.X, msg.Y, l)
	case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
		vm := a.session.BuildViewModel(a.width, l.schemaHeight)
		if msg.X < l.leftWidth {
			if msg.Y < l.schemaTop {
				a.clickConnections(msg.Y, l)
			} else {
				a.clickSchema(msg.Y, l, vm)
			}
		} else {
			a.clickData(msg.X, msg.Y, l, vm)
		}
	}
	return a, nil
}

// wheel moves the hovered list's selection by one step; focus stays put.
func (a *App) wheel(delta, x, y int, l layout) {
	if x >= l.leftWidth {
		return
	}
	if y < l.schemaTop {
		a.session.MoveConnectionSelection(delta)
		return
	}
	a.session.MoveObjectSelection(delta, session.SchemaWindow(l.schemaHeight))
}

func (a *App) clickConnections(y int, l layout) {
	// border + title
	idx := y - l.contentTop - 2
	if idx < 0 || idx >= len(a.session.Connections()) {
		return
	}
	a.session.SetFocus(session.FocusConnections)
	a.session.SelectConnection(a.ctx, idx)
	a.seedConsoleHistory()
	a.syncInputFocus()
}

func (a *App) clickSchema(y int, l layout, vm session.ViewModel) {
	// border + title + search line
	line := y - l.schemaTop - 3
	if line == -1 {
		a.session.SetFocus(session.FocusSchemaSearch)
		a.syncInputFocus()
		return
	}
	idx, detail, ok := vm.Schema.ObjectAtLine(line)
	if !ok || detail {
		return
	}
	a.session.SetFocus(session.FocusSchemaList)
	a.session.SelectObject(idx)
	a.syncInputFocus()
	obj, ok := a.session.CurrentObject()
	if !ok {
		return
	}
	if a.session.RegisterObjectClick(obj.Key()) {
		a.session.ToggleDetails(a.ctx, obj.Schema, obj.Name)
		return
	}
	a.loadSelectedObject()
}

func (a *App) clickData(x, y int, l layout, vm session.ViewModel) {
	// border + padding inside the right panel
	relX := x - l.leftWidth - 2
	switch y - l.contentTop {
	case 1: // header line
		switch {
		case vm.Data.PrevRegion.Contains(relX):
			a.session.PrevPage(a.ctx)
		case vm.Data.NextRegion.Contains(relX):
			a.session.NextPage(a.ctx)
		case vm.Data.CSVRegion.Contains(relX):
			a.exportPage("csv")
		case vm.Data.JSONRegion.Contains(relX):
			a.exportPage("json")
		}
	case 2: // ORDER BY field
		a.session.SetFocus(session.FocusDataOrderBy)
		a.syncInputFocus()
	case 3: // WHERE field
		a.session.SetFocus(session.FocusDataWhere)
		a.syncInputFocus()
	}
}
