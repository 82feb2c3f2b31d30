package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/4nzor/dbrowse/internal/config"
	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
	"github.com/4nzor/dbrowse/internal/session"
	"github.com/4nzor/dbrowse/internal/store"
)

// stubProvider serves two tables so mouse dispatch can run end to end
// without a database.
type stubProvider struct {
	queries []string
}

func (p *stubProvider) Connect(context.Context, models.ConnectionConfig) error { return nil }

func (p *stubProvider) Close() error { return nil }

func (p *stubProvider) Execute(_ context.Context, query string, _ ...any) ([][]any, error) {
	p.queries = append(p.queries, query)
	return [][]any{{int64(2)}}, nil
}

func (p *stubProvider) ExecuteWithColumns(_ context.Context, query string, _ ...any) ([][]any, []string, error) {
	p.queries = append(p.queries, query)
	return [][]any{{int64(1), "row-1"}}, []string{"id", "name"}, nil
}

func (p *stubProvider) ListObjects(context.Context, string) ([]models.SchemaObject, error) {
	return []models.SchemaObject{
		{Schema: "public", Name: "orders", SizeBytes: 4096},
		{Schema: "public", Name: "users", SizeBytes: 1024},
	}, nil
}

func (p *stubProvider) ListColumns(context.Context, string, string) ([]models.ColumnInfo, error) {
	return []models.ColumnInfo{{Name: "id", Type: "bigint"}}, nil
}

func (p *stubProvider) ListIndexes(context.Context, string, string) ([]models.IndexInfo, error) {
	return []models.IndexInfo{{Name: "pkey", Definition: "PRIMARY KEY (id)"}}, nil
}

func (p *stubProvider) QuoteIdentifier(name string) string { return `"` + name + `"` }

func (p *stubProvider) DefaultSchema() string { return "public" }

func (p *stubProvider) SchemaQualified() bool { return true }

// newTestApp builds a connected app at a fixed 100x40 size: the connections
// panel spans rows 1-5, so the first schema line lands on row 9.
func newTestApp(t *testing.T) (*App, *stubProvider) {
	t.Helper()
	prov := &stubProvider{}
	factory := func(models.EngineKind) (db.Provider, error) { return prov, nil }
	conns := []models.ConnectionConfig{
		{Name: "primary", Engine: models.EnginePostgres, Host: "localhost", Port: 5432, Database: "app", User: "app"},
		{Name: "replica", Engine: models.EnginePostgres, Host: "replica", Port: 5432, Database: "app", User: "app"},
	}
	sess := session.New(session.DefaultConfig(), factory, conns)
	sess.SetClock(func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	app := New(context.Background(), config.GetDefaults(), sess, store.New(t.TempDir()), nil)
	app.width = 100
	app.height = 40
	sess.SelectConnection(context.Background(), 0)
	if !sess.Connected() {
		t.Fatal("session should be connected")
	}
	return app, prov
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestDoubleClickTogglesObjectDetails(t *testing.T) {
	app, prov := newTestApp(t)

	app.Update(leftClick(2, 9))
	if app.session.MetadataCount() != 0 {
		t.Fatal("a single click must not expand details")
	}
	if len(prov.queries) == 0 {
		t.Fatal("a single click should load the object's rows")
	}

	app.Update(leftClick(2, 9))
	if app.session.MetadataCount() != 1 {
		t.Fatalf("expanded objects = %d, want 1", app.session.MetadataCount())
	}
	if _, ok := app.session.Metadata(models.ObjectKey{Schema: "public", Name: "orders"}); !ok {
		t.Error("details should be cached for the clicked object")
	}
}

func TestClickActsOnReleaseOnly(t *testing.T) {
	app, _ := newTestApp(t)

	press := tea.MouseMsg{X: 2, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	app.Update(press)
	if app.session.SelectedObject() != 0 {
		t.Fatalf("selection after press = %d, want 0", app.session.SelectedObject())
	}

	app.Update(leftClick(2, 10))
	if app.session.SelectedObject() != 1 {
		t.Errorf("selection after release = %d, want 1", app.session.SelectedObject())
	}
}

func TestWheelMovesSelectionWithoutFocusChange(t *testing.T) {
	app, _ := newTestApp(t)
	if app.session.Focus() != session.FocusConnections {
		t.Fatalf("initial focus = %v", app.session.Focus())
	}

	wheel := func(x, y int, button tea.MouseButton) {
		app.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
	}

	// Over the schema panel the object selection moves.
	wheel(2, 9, tea.MouseButtonWheelDown)
	if app.session.SelectedObject() != 1 {
		t.Errorf("object selection = %d, want 1", app.session.SelectedObject())
	}
	wheel(2, 9, tea.MouseButtonWheelUp)
	if app.session.SelectedObject() != 0 {
		t.Errorf("object selection = %d, want 0", app.session.SelectedObject())
	}

	// Over the connections panel the connection selection moves, without
	// connecting.
	wheel(2, 3, tea.MouseButtonWheelDown)
	if app.session.SelectedConnection() != 1 {
		t.Errorf("connection selection = %d, want 1", app.session.SelectedConnection())
	}
	if app.session.ActiveConnection() != 0 {
		t.Error("wheel must not switch the live connection")
	}

	if app.session.Focus() != session.FocusConnections {
		t.Errorf("focus after wheel = %v, want unchanged", app.session.Focus())
	}
}
