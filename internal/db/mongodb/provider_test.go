package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/4nzor/dbrowse/internal/db"
)

func TestExecuteRejectsSQL(t *testing.T) {
	p := New()

	_, err := p.Execute(context.Background(), "SELECT 1")
	var queryErr *db.QueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("error = %v, want QueryError", err)
	}
	if queryErr.Query != "SELECT 1" {
		t.Errorf("query = %q", queryErr.Query)
	}

	_, _, err = p.ExecuteWithColumns(context.Background(), "SELECT 1")
	if !errors.As(err, &queryErr) {
		t.Fatalf("error = %v, want QueryError", err)
	}
}

func TestParseFilterFallsBackToEmpty(t *testing.T) {
	if got := parseFilter("not json"); len(got) != 0 {
		t.Errorf("filter = %v, want empty", got)
	}
	if got := parseFilter(""); len(got) != 0 {
		t.Errorf("filter = %v, want empty", got)
	}
	got := parseFilter(`{"status": "open"}`)
	if len(got) != 1 || got[0].Key != "status" {
		t.Errorf("filter = %v", got)
	}
}
