package session

import (
	"fmt"
	"strings"

	"github.com/4nzor/dbrowse/internal/format"
)

// SizeWeight buckets an object's size for styling.
type SizeWeight int

const (
	SizeSmall SizeWeight = iota
	SizeMedium
	SizeLarge
)

const (
	largeObjectBytes  = 100 * 1024 * 1024
	mediumObjectBytes = 10 * 1024 * 1024
)

func weightFor(sizeBytes int64) SizeWeight {
	switch {
	case sizeBytes > largeObjectBytes:
		return SizeLarge
	case sizeBytes > mediumObjectBytes:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// Region is a clickable half-open column range [Start, End) on one line.
type Region struct {
	Start, End int
}

// Contains reports whether column x falls inside the region.
func (r Region) Contains(x int) bool { return x >= r.Start && x < r.End }

// ConnectionRow is one rendered connection entry.
type ConnectionRow struct {
	Label    string
	Selected bool
	Active   bool
}

// SchemaLine is one rendered schema panel line: either an object row or an
// indented detail row belonging to the object at ObjectIndex.
type SchemaLine struct {
	Text        string
	ObjectIndex int // index into Objects(); valid for detail lines too
	Detail      bool
	Selected    bool
	Weight      SizeWeight
}

// SchemaViewModel is the schema panel, windowed to the available height.
type SchemaViewModel struct {
	Search string
	Lines  []SchemaLine
	Window int
	Total  int
}

// DataViewModel is the data panel: header with pager and export hotspots,
// the filter fields, and the current page as pre-truncated cells.
type DataViewModel struct {
	Header     string
	PrevRegion Region
	NextRegion Region
	CSVRegion  Region
	JSONRegion Region

	Where   string
	OrderBy string

	Columns []string
	Cells   [][]string
	Err     string
}

// ConsoleViewModel is the modal console: editor text, the last grid, and a
// one-line result summary.
type ConsoleViewModel struct {
	Open    bool
	Editor  string
	Columns []string
	Cells   [][]string
	Err     string
	Summary string
}

// ViewModel is the full render-ready snapshot. Building it mutates nothing;
// the renderer maps it to the screen and routes clicks back through the
// regions and line indexes.
type ViewModel struct {
	Focus       Focus
	Connections []ConnectionRow
	Schema      SchemaViewModel
	Data        DataViewModel
	Console     ConsoleViewModel
	Status      []string
}

// SchemaWindow returns the schema list window for the given panel height:
// height minus chrome, never below 5 lines.
func SchemaWindow(height int) int {
	window := height - 6
	if window < 5 {
		window = 5
	}
	return window
}

// BuildViewModel assembles the render-ready snapshot for a terminal of the
// given size.
func (s *Session) BuildViewModel(width, height int) ViewModel {
	vm := ViewModel{
		Focus:  s.focus,
		Status: s.status.Tail(3),
	}

	for i, conn := range s.connections {
		vm.Connections = append(vm.Connections, ConnectionRow{
			Label:    conn.Label(),
			Selected: i == s.selectedConn,
			Active:   i == s.activeConn,
		})
	}

	vm.Schema = s.buildSchemaViewModel(height)
	vm.Data = s.buildDataViewModel()
	vm.Console = s.buildConsoleViewModel()
	return vm
}

func (s *Session) buildSchemaViewModel(height int) SchemaViewModel {
	window := SchemaWindow(height)
	svm := SchemaViewModel{
		Search: s.search,
		Window: window,
		Total:  len(s.objects),
	}

	start := s.viewportStart
	if start > len(s.objects)-window {
		start = len(s.objects) - window
	}
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(s.objects) {
		end = len(s.objects)
	}

	for i := start; i < end; i++ {
		obj := s.objects[i]
		svm.Lines = append(svm.Lines, SchemaLine{
			Text:        fmt.Sprintf("%s (%s)", obj.Display(), format.Size(obj.SizeBytes)),
			ObjectIndex: i,
			Selected:    i == s.selectedObject,
			Weight:      weightFor(obj.SizeBytes),
		})
		meta, ok := s.metadata[obj.Key()]
		if !ok {
			continue
		}
		for _, line := range meta.Columns {
			svm.Lines = append(svm.Lines, SchemaLine{Text: "  " + line, ObjectIndex: i, Detail: true})
		}
		for _, line := range meta.Indexes {
			svm.Lines = append(svm.Lines, SchemaLine{Text: "  idx " + line, ObjectIndex: i, Detail: true})
		}
	}
	return svm
}

func (s *Session) buildDataViewModel() DataViewModel {
	dvm := DataViewModel{
		Where:   s.where,
		OrderBy: s.orderBy,
		Columns: s.columns,
		Err:     s.dataErr,
	}

	first, last := 0, 0
	if s.totalCount > 0 && len(s.rows) > 0 {
		first = s.offset + 1
		last = s.offset + len(s.rows)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Data (Rows %d-%d of %d)  ", first, last, s.totalCount)
	dvm.PrevRegion = appendRegion(&b, "◀")
	b.WriteString(" ")
	dvm.NextRegion = appendRegion(&b, "▶")
	b.WriteString("  ")
	dvm.CSVRegion = appendRegion(&b, "[ CSV ]")
	b.WriteString(" ")
	dvm.JSONRegion = appendRegion(&b, "[ JSON ]")
	dvm.Header = b.String()

	for _, row := range s.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = format.Cell(v, s.cfg.MaxCellWidth)
		}
		dvm.Cells = append(dvm.Cells, cells)
	}
	return dvm
}

// appendRegion writes a header fragment and returns its rune-column span.
func appendRegion(b *strings.Builder, text string) Region {
	start := len([]rune(b.String()))
	b.WriteString(text)
	return Region{Start: start, End: start + len([]rune(text))}
}

func (s *Session) buildConsoleViewModel() ConsoleViewModel {
	cvm := ConsoleViewModel{
		Open:    s.consoleMode,
		Editor:  s.console.editor,
		Columns: s.console.columns,
		Err:     s.console.err,
	}
	for _, row := range s.console.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = format.Cell(v, s.cfg.MaxCellWidth)
		}
		cvm.Cells = append(cvm.Cells, cells)
	}
	if s.console.err == "" && s.console.columns != nil {
		cvm.Summary = fmt.Sprintf("%d rows in %.3fs", len(s.console.rows), s.console.elapsed.Seconds())
	}
	return cvm
}

// ObjectAtLine maps a clicked schema panel line back to its object index,
// reporting whether the click landed on a detail row.
func (vm SchemaViewModel) ObjectAtLine(line int) (idx int, detail bool, ok bool) {
	if line < 0 || line >= len(vm.Lines) {
		return 0, false, false
	}
	l := vm.Lines[line]
	return l.ObjectIndex, l.Detail, true
}

// ActiveConnectionLabel returns the label of the open connection, empty when
// disconnected.
func (s *Session) ActiveConnectionLabel() string {
	cfg, ok := s.activeConfig()
	if !ok {
		return ""
	}
	return cfg.Label()
}

// CurrentObjectName returns the display name of the selected object, empty
// when nothing is selected.
func (s *Session) CurrentObjectName() string {
	obj, ok := s.CurrentObject()
	if !ok {
		return ""
	}
	return obj.Display()
}
