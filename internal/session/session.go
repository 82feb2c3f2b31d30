// Package session implements the interactive browsing engine: a single
// state object owning the active connection, schema objects, per-object
// filter memory, pagination, console history, and focus. Every state
// transition is a named method so the behavior is testable without a
// terminal. The package has no driver or UI dependencies; all database
// access goes through the injected provider factory.
package session

import (
	"fmt"
	"time"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

// Config carries the tunables of the session engine.
type Config struct {
	PageSize          int
	MaxCellWidth      int
	DoubleClickWindow time.Duration
	HistoryLimit      int
	StatusLimit       int
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		PageSize:          10,
		MaxCellWidth:      30,
		DoubleClickWindow: 400 * time.Millisecond,
		HistoryLimit:      50,
		StatusLimit:       30,
	}
}

// Session is the single source of truth for the interactive browser.
type Session struct {
	cfg     Config
	factory db.Factory
	status  *StatusLog
	now     func() time.Time

	connections  []models.ConnectionConfig
	selectedConn int
	activeConn   int
	provider     db.Provider

	allObjects     []models.SchemaObject
	objects        []models.SchemaObject
	selectedObject int
	viewportStart  int
	search         string

	metadata map[models.ObjectKey]models.ObjectMetadata
	filters  map[models.ObjectKey]models.FilterState

	where       string
	orderBy     string
	offset      int
	totalCount  int
	rows        [][]any
	columns     []string
	dataErr     string
	dataElapsed time.Duration

	console     consoleState
	consoleMode bool
	focus       Focus
	prevFocus   Focus

	lastClickKey models.ObjectKey
	lastClickAt  time.Time
}

// New creates a session over the saved descriptors. The provider factory is
// invoked lazily on the first connect per selection.
func New(cfg Config, factory db.Factory, connections []models.ConnectionConfig) *Session {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.MaxCellWidth <= 0 {
		cfg.MaxCellWidth = 30
	}
	if cfg.DoubleClickWindow <= 0 {
		cfg.DoubleClickWindow = 400 * time.Millisecond
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	if cfg.StatusLimit <= 0 {
		cfg.StatusLimit = 30
	}

	s := &Session{
		cfg:            cfg,
		factory:        factory,
		now:            time.Now,
		connections:    connections,
		selectedConn:   -1,
		activeConn:     -1,
		selectedObject: -1,
		metadata:       map[models.ObjectKey]models.ObjectMetadata{},
		filters:        map[models.ObjectKey]models.FilterState{},
		console:        newConsoleState(),
		focus:          FocusConnections,
	}
	s.status = NewStatusLog(cfg.StatusLimit, func() time.Time { return s.now() })
	if len(connections) > 0 {
		s.selectedConn = 0
	}
	return s
}

// SetClock replaces the session clock; tests use this to drive the
// double-click window and status timestamps.
func (s *Session) SetClock(now func() time.Time) { s.now = now }

// Status returns the session's status log.
func (s *Session) Status() *StatusLog { return s.status }

// Config returns the tunables the session was built with.
func (s *Session) Config() Config { return s.cfg }

// Close releases the active provider handle. Safe on every exit path.
func (s *Session) Close() {
	s.closeActive()
}

func (s *Session) closeActive() {
	if s.provider == nil {
		return
	}
	if err := s.provider.Close(); err != nil {
		s.status.Pushf("Close error: %v", err)
	}
	s.provider = nil
	s.activeConn = -1
}

// Connected reports whether a provider handle is open.
func (s *Session) Connected() bool { return s.provider != nil }

// SeedHistory pre-populates the console history ring, oldest first. Used to
// restore persisted history at startup.
func (s *Session) SeedHistory(queries []string) {
	for _, q := range queries {
		s.console.appendHistory(q, s.cfg.HistoryLimit)
	}
}

// StatusLog is a bounded, timestamped, append-only message log. Controllers
// write it; the renderer only reads it.
type StatusLog struct {
	max     int
	now     func() time.Time
	entries []string
}

// NewStatusLog creates a log that keeps the most recent max entries.
func NewStatusLog(max int, now func() time.Time) *StatusLog {
	if max <= 0 {
		max = 30
	}
	if now == nil {
		now = time.Now
	}
	return &StatusLog{max: max, now: now}
}

// Pushf appends a formatted message, evicting the oldest entries beyond the
// cap.
func (l *StatusLog) Pushf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.entries = append(l.entries, fmt.Sprintf("[%s] %s", l.now().Format("15:04:05"), msg))
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Entries returns a copy of the log, oldest first.
func (l *StatusLog) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns up to n of the newest entries, oldest first.
func (l *StatusLog) Tail(n int) []string {
	if n >= len(l.entries) {
		return l.Entries()
	}
	out := make([]string, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
