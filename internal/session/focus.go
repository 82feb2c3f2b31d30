package session

// Focus names the panel that receives keyboard input.
type Focus int

const (
	FocusConnections Focus = iota
	FocusSchemaSearch
	FocusSchemaList
	FocusDataOrderBy
	FocusDataWhere
	FocusConsole
)

func (f Focus) String() string {
	switch f {
	case FocusConnections:
		return "connections"
	case FocusSchemaSearch:
		return "schema-search"
	case FocusSchemaList:
		return "schema-list"
	case FocusDataOrderBy:
		return "data-order-by"
	case FocusDataWhere:
		return "data-where"
	case FocusConsole:
		return "console"
	default:
		return "unknown"
	}
}

// Focus returns the panel that currently receives keyboard input.
func (s *Session) Focus() Focus { return s.focus }

// cycleOrder is the Tab ring. The data filter fields participate only while
// an object is selected.
var cycleOrder = []Focus{
	FocusConnections,
	FocusSchemaSearch,
	FocusSchemaList,
	FocusDataOrderBy,
	FocusDataWhere,
}

// CycleFocus advances focus to the next reachable panel in the Tab ring. The
// console is modal and never part of the ring; while it is open Tab does
// nothing.
func (s *Session) CycleFocus() {
	if s.consoleMode {
		return
	}
	cur := 0
	for i, f := range cycleOrder {
		if f == s.focus {
			cur = i
			break
		}
	}
	for step := 1; step <= len(cycleOrder); step++ {
		next := cycleOrder[(cur+step)%len(cycleOrder)]
		if s.focusReachable(next) {
			s.focus = next
			return
		}
	}
}

// SetFocus moves focus directly, e.g. from a mouse click. Unreachable
// targets are ignored.
func (s *Session) SetFocus(f Focus) {
	if s.consoleMode || !s.focusReachable(f) {
		return
	}
	s.focus = f
}

func (s *Session) focusReachable(f Focus) bool {
	switch f {
	case FocusDataOrderBy, FocusDataWhere:
		_, ok := s.CurrentObject()
		return ok
	case FocusConsole:
		return false
	default:
		return true
	}
}

// MoveUp routes an up-arrow to the focused panel: list panels move their
// selection, the WHERE field hops to ORDER BY, text fields otherwise ignore
// it.
func (s *Session) MoveUp(window int) {
	switch s.focus {
	case FocusConnections:
		s.MoveConnectionSelection(-1)
	case FocusSchemaList:
		s.MoveObjectSelection(-1, window)
	case FocusDataWhere:
		s.focus = FocusDataOrderBy
	}
}

// MoveDown routes a down-arrow to the focused panel; the ORDER BY field hops
// to WHERE.
func (s *Session) MoveDown(window int) {
	switch s.focus {
	case FocusConnections:
		s.MoveConnectionSelection(1)
	case FocusSchemaList:
		s.MoveObjectSelection(1, window)
	case FocusDataOrderBy:
		s.focus = FocusDataWhere
	}
}
