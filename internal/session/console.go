package session

import (
	"context"
	"strings"
	"time"
)

// consoleState carries the modal query console: the editor buffer, the last
// result grid, and the bounded history ring with its navigation cursor.
// Cursor -1 means live editing; 0 is the newest history entry.
type consoleState struct {
	editor  string
	rows    [][]any
	columns []string
	err     string
	elapsed time.Duration

	history []string // oldest first
	cursor  int
	draft   string
}

func newConsoleState() consoleState {
	return consoleState{cursor: -1}
}

// appendHistory pushes a trimmed query onto the ring, skipping blanks and
// adjacent duplicates and evicting the oldest beyond limit.
func (c *consoleState) appendHistory(query string, limit int) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if n := len(c.history); n > 0 && c.history[n-1] == query {
		return
	}
	c.history = append(c.history, query)
	if limit > 0 && len(c.history) > limit {
		c.history = c.history[len(c.history)-limit:]
	}
}

// ConsoleOpen reports whether the console modal is up.
func (s *Session) ConsoleOpen() bool { return s.consoleMode }

// ConsoleText returns the editor buffer.
func (s *Session) ConsoleText() string { return s.console.editor }

// ConsoleRows returns the last result grid.
func (s *Session) ConsoleRows() [][]any { return s.console.rows }

// ConsoleColumns returns the last result's column names.
func (s *Session) ConsoleColumns() []string { return s.console.columns }

// ConsoleError returns the last execution error text, empty on success.
func (s *Session) ConsoleError() string { return s.console.err }

// ConsoleElapsed returns the duration of the last execution.
func (s *Session) ConsoleElapsed() time.Duration { return s.console.elapsed }

// ConsoleHistory returns a copy of the history ring, oldest first.
func (s *Session) ConsoleHistory() []string {
	out := make([]string, len(s.console.history))
	copy(out, s.console.history)
	return out
}

// ConsoleCursor returns the history cursor; -1 is the live edit position.
func (s *Session) ConsoleCursor() int { return s.console.cursor }

// EnterConsole opens the modal, remembering the focus to restore on close.
// Editor text and results survive across open/close.
func (s *Session) EnterConsole() {
	if s.consoleMode {
		return
	}
	s.prevFocus = s.focus
	s.focus = FocusConsole
	s.consoleMode = true
}

// LeaveConsole closes the modal and restores the previous focus.
func (s *Session) LeaveConsole() {
	if !s.consoleMode {
		return
	}
	s.focus = s.prevFocus
	s.consoleMode = false
}

// SetConsoleText replaces the editor buffer with live input; any history
// navigation in progress is abandoned and the new text becomes the draft.
func (s *Session) SetConsoleText(text string) {
	s.console.editor = text
	s.console.cursor = -1
	s.console.draft = text
}

// ExecuteConsole runs the editor buffer against the active connection. A
// blank buffer and a missing connection are inline errors that leave the
// previous result grid intact. A successful run replaces the grid and
// appends the query to history.
func (s *Session) ExecuteConsole(ctx context.Context) {
	query := strings.TrimSpace(s.console.editor)
	if query == "" {
		s.console.err = "empty query"
		return
	}
	if s.provider == nil {
		s.console.err = "no database connection"
		return
	}

	start := s.now()
	rows, columns, err := s.provider.ExecuteWithColumns(ctx, query)
	s.console.elapsed = s.now().Sub(start)
	if err != nil {
		s.console.err = err.Error()
		s.status.Pushf("Console error: %v", err)
		return
	}

	s.console.rows = rows
	s.console.columns = columns
	s.console.err = ""
	s.console.appendHistory(query, s.cfg.HistoryLimit)
	s.console.cursor = -1
	s.console.draft = ""
	s.status.Pushf("Console query executed in %.3fs (%d rows)", s.console.elapsed.Seconds(), len(rows))
}

// HistoryOlder steps the editor one entry back in history. On the first step
// a non-empty, distinct editor buffer is snapshotted into history so it is
// not lost. At the oldest entry this is a no-op.
func (s *Session) HistoryOlder() {
	c := &s.console
	if len(c.history) == 0 {
		return
	}
	if c.cursor == -1 {
		c.draft = c.editor
		if trimmed := strings.TrimSpace(c.editor); trimmed != "" && trimmed != c.history[len(c.history)-1] {
			c.appendHistory(trimmed, s.cfg.HistoryLimit)
			// The snapshot occupies the newest slot; start behind it.
			c.cursor = 0
		}
	}
	if c.cursor >= len(c.history)-1 {
		c.editor = c.history[0]
		c.cursor = len(c.history) - 1
		return
	}
	c.cursor++
	c.editor = c.history[len(c.history)-1-c.cursor]
}

// HistoryNewer steps the editor one entry forward; stepping past the newest
// entry restores the draft that was being edited.
func (s *Session) HistoryNewer() {
	c := &s.console
	if c.cursor == -1 {
		return
	}
	c.cursor--
	if c.cursor == -1 {
		c.editor = c.draft
		return
	}
	c.editor = c.history[len(c.history)-1-c.cursor]
}
