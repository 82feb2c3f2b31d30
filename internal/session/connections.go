package session

import (
	"context"

	"github.com/4nzor/dbrowse/internal/models"
)

// Connections returns the loaded descriptors in display order.
func (s *Session) Connections() []models.ConnectionConfig { return s.connections }

// SelectedConnection returns the selection index, -1 when the list is empty.
func (s *Session) SelectedConnection() int { return s.selectedConn }

// ActiveConnection returns the index whose handle is open, -1 when none.
func (s *Session) ActiveConnection() int { return s.activeConn }

// ReplaceConnections swaps in a freshly loaded descriptor list. The open
// handle survives when its descriptor is still present under the same name;
// otherwise it is closed and the panels reset.
func (s *Session) ReplaceConnections(configs []models.ConnectionConfig) {
	active, hadActive := s.activeConfig()
	s.connections = configs
	s.selectedConn = -1
	s.activeConn = -1
	if len(configs) > 0 {
		s.selectedConn = 0
	}

	if hadActive {
		for i, cfg := range configs {
			if cfg.Name == active.Name {
				s.activeConn = i
				s.selectedConn = i
				return
			}
		}
		s.closeActive()
		s.resetSchemaState()
	}
}

// MoveConnectionSelection moves the highlight without connecting.
func (s *Session) MoveConnectionSelection(delta int) {
	if len(s.connections) == 0 {
		return
	}
	idx := s.selectedConn + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.connections) {
		idx = len(s.connections) - 1
	}
	s.selectedConn = idx
}

// SelectConnection moves the selection and lazily (re)connects, then reloads
// the schema object list. A connect failure is logged and leaves the session
// without an active connection; dependent panels show empty data.
func (s *Session) SelectConnection(ctx context.Context, idx int) {
	if idx < 0 || idx >= len(s.connections) {
		return
	}
	s.selectedConn = idx
	s.ReloadObjects(ctx)
}

// ReloadObjects connects the selected descriptor if needed and refreshes the
// schema list.
func (s *Session) ReloadObjects(ctx context.Context) {
	if !s.ensureConnected(ctx) {
		s.resetSchemaState()
		return
	}
	s.LoadObjects(ctx)
}

// ensureConnected opens a handle for the selected connection, closing any
// previously open handle first. Only one handle is live at a time.
func (s *Session) ensureConnected(ctx context.Context) bool {
	if s.selectedConn < 0 || s.selectedConn >= len(s.connections) {
		return false
	}
	if s.provider != nil && s.activeConn == s.selectedConn {
		return true
	}
	s.closeActive()

	cfg := s.connections[s.selectedConn]
	provider, err := s.factory(cfg.Engine)
	if err != nil {
		s.status.Pushf("Connection error: %v", err)
		return false
	}
	s.status.Pushf("Connecting to %s (%s@%s)...", cfg.Name, cfg.User, cfg.Host)
	if err := provider.Connect(ctx, cfg); err != nil {
		s.status.Pushf("Connection error: %v", err)
		return false
	}
	s.provider = provider
	s.activeConn = s.selectedConn
	s.status.Pushf("Connected to %s.", cfg.Name)
	return true
}

// activeConfig returns the descriptor of the open handle.
func (s *Session) activeConfig() (models.ConnectionConfig, bool) {
	if s.activeConn < 0 || s.activeConn >= len(s.connections) {
		return models.ConnectionConfig{}, false
	}
	return s.connections[s.activeConn], true
}
