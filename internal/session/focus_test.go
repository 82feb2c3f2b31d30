package session

import (
	"context"
	"testing"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

func TestCycleFocusWithSelection(t *testing.T) {
	s, _ := newTestSession(t)

	want := []Focus{
		FocusSchemaSearch,
		FocusSchemaList,
		FocusDataOrderBy,
		FocusDataWhere,
		FocusConnections,
	}
	for i, f := range want {
		s.CycleFocus()
		if s.Focus() != f {
			t.Fatalf("press %d: focus = %v, want %v", i+1, s.Focus(), f)
		}
	}
}

func TestCycleFocusSkipsFilterFieldsWithoutSelection(t *testing.T) {
	fake := &fakeProvider{qualified: true, schema: "public"}
	s := New(DefaultConfig(), func(kind models.EngineKind) (db.Provider, error) {
		return fake, nil
	}, testConnections())
	s.SelectConnection(context.Background(), 0)

	if _, ok := s.CurrentObject(); ok {
		t.Fatal("no object should be selected")
	}

	want := []Focus{
		FocusSchemaSearch,
		FocusSchemaList,
		FocusConnections,
		FocusSchemaSearch,
		FocusSchemaList,
		FocusConnections,
	}
	for i, f := range want {
		s.CycleFocus()
		if s.Focus() != f {
			t.Fatalf("press %d: focus = %v, want %v", i+1, s.Focus(), f)
		}
	}
}

func TestSetFocusRejectsUnreachable(t *testing.T) {
	fake := &fakeProvider{qualified: true, schema: "public"}
	s := New(DefaultConfig(), func(kind models.EngineKind) (db.Provider, error) {
		return fake, nil
	}, testConnections())
	s.SelectConnection(context.Background(), 0)

	s.SetFocus(FocusDataWhere)
	if s.Focus() != FocusConnections {
		t.Errorf("focus = %v, filter fields need a selected object", s.Focus())
	}
	s.SetFocus(FocusConsole)
	if s.Focus() != FocusConnections {
		t.Errorf("focus = %v, the console is modal, not a focus target", s.Focus())
	}
	s.SetFocus(FocusSchemaList)
	if s.Focus() != FocusSchemaList {
		t.Errorf("focus = %v, want schema list", s.Focus())
	}
}

func TestArrowsHopBetweenFilterFields(t *testing.T) {
	s, _ := newTestSession(t)

	s.SetFocus(FocusDataOrderBy)
	s.MoveDown(10)
	if s.Focus() != FocusDataWhere {
		t.Fatalf("focus = %v, want data where", s.Focus())
	}
	// Down from the bottom field stays put.
	s.MoveDown(10)
	if s.Focus() != FocusDataWhere {
		t.Errorf("focus = %v, want data where", s.Focus())
	}
	s.MoveUp(10)
	if s.Focus() != FocusDataOrderBy {
		t.Errorf("focus = %v, want data order by", s.Focus())
	}
	s.MoveUp(10)
	if s.Focus() != FocusDataOrderBy {
		t.Errorf("focus = %v, want data order by", s.Focus())
	}
}

func TestArrowsMoveListSelections(t *testing.T) {
	s, _ := newTestSession(t)

	s.SetFocus(FocusSchemaList)
	s.MoveDown(10)
	if s.SelectedObject() != 1 {
		t.Errorf("object selection = %d, want 1", s.SelectedObject())
	}
	s.MoveDown(10)
	if s.SelectedObject() != 1 {
		t.Errorf("object selection clamped = %d, want 1", s.SelectedObject())
	}
	s.MoveUp(10)
	if s.SelectedObject() != 0 {
		t.Errorf("object selection = %d, want 0", s.SelectedObject())
	}

	s.SetFocus(FocusConnections)
	s.MoveDown(10)
	if s.SelectedConnection() != 1 {
		t.Errorf("connection selection = %d, want 1", s.SelectedConnection())
	}
	s.MoveUp(10)
	s.MoveUp(10)
	if s.SelectedConnection() != 0 {
		t.Errorf("connection selection clamped = %d, want 0", s.SelectedConnection())
	}
}
