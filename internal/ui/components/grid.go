package components

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Grid renders a page of pre-formatted cells as a bordered table. The cells
// arrive already truncated; the grid only lays them out.
type Grid struct {
	Columns  []string
	Cells    [][]string
	MaxWidth int
}

// View renders the grid, empty string when there are no columns.
func (g *Grid) View() string {
	if len(g.Columns) == 0 {
		return ""
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.Style().Options.SeparateRows = false
	w.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(g.Columns))
	for i, col := range g.Columns {
		header[i] = col
	}
	w.AppendHeader(header)

	for _, cells := range g.Cells {
		row := make(table.Row, len(g.Columns))
		for i := range row {
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		w.AppendRow(row)
	}

	if g.MaxWidth > 0 {
		w.SetAllowedRowLength(g.MaxWidth)
	}
	return w.Render()
}
