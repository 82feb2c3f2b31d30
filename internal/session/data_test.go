package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

func TestLoadRowsFirstPage(t *testing.T) {
	s, fake := newTestSession(t)
	ctx := context.Background()

	s.LoadRows(ctx, true)

	if s.TotalCount() != 25 {
		t.Fatalf("total = %d, want 25", s.TotalCount())
	}
	if len(s.Rows()) != 10 {
		t.Fatalf("page rows = %d, want 10", len(s.Rows()))
	}
	if got := s.Columns(); len(got) != 2 || got[0] != "id" {
		t.Errorf("columns = %v", got)
	}
	want := `SELECT * FROM "public"."orders" LIMIT 10 OFFSET 0`
	if got := fake.lastQuery(); got != want {
		t.Errorf("page query = %q, want %q", got, want)
	}
}

func TestUnqualifiedEngineOmitsSchemaPrefix(t *testing.T) {
	fake := &fakeProvider{
		objects:  []models.SchemaObject{{Name: "tracks", SizeBytes: 1024}},
		rowCount: 3,
	}
	s := New(DefaultConfig(), func(kind models.EngineKind) (db.Provider, error) {
		return fake, nil
	}, testConnections())
	ctx := context.Background()
	s.SelectConnection(ctx, 0)

	s.LoadRows(ctx, true)

	want := `SELECT * FROM "tracks" LIMIT 10 OFFSET 0`
	if got := fake.lastQuery(); got != want {
		t.Errorf("page query = %q, want %q", got, want)
	}
}

func TestApplyWhereThenPaging(t *testing.T) {
	s, fake := newTestSession(t)
	ctx := context.Background()

	s.ApplyWhere(ctx, "status = 'open'")
	if s.Offset() != 0 {
		t.Fatalf("offset after ApplyWhere = %d, want 0", s.Offset())
	}

	s.NextPage(ctx)
	s.NextPage(ctx)
	if s.Offset() != 20 {
		t.Fatalf("offset after two NextPage = %d, want 20", s.Offset())
	}
	if s.Offset()%s.Config().PageSize != 0 {
		t.Error("offset must stay a page-size multiple")
	}
	want := `SELECT * FROM "public"."orders" WHERE status = 'open' LIMIT 10 OFFSET 20`
	if got := fake.lastQuery(); got != want {
		t.Errorf("page query = %q, want %q", got, want)
	}

	// 25 rows: the third page is the last one.
	s.NextPage(ctx)
	if s.Offset() != 20 {
		t.Errorf("offset past the end = %d, want 20", s.Offset())
	}
	if len(s.Rows()) != 5 {
		t.Errorf("last page rows = %d, want 5", len(s.Rows()))
	}
}

func TestPrevPageStopsAtZero(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.LoadRows(ctx, true)
	s.NextPage(ctx)
	s.PrevPage(ctx)
	if s.Offset() != 0 {
		t.Fatalf("offset = %d, want 0", s.Offset())
	}
	s.PrevPage(ctx)
	if s.Offset() != 0 {
		t.Errorf("PrevPage on the first page moved the offset to %d", s.Offset())
	}
}

func TestOrderByAppendedBetweenWhereAndLimit(t *testing.T) {
	s, fake := newTestSession(t)
	ctx := context.Background()

	s.ApplyWhere(ctx, "id > 5")
	s.ApplyOrderBy(ctx, "id DESC")

	want := `SELECT * FROM "public"."orders" WHERE id > 5 ORDER BY id DESC LIMIT 10 OFFSET 0`
	if got := fake.lastQuery(); got != want {
		t.Errorf("page query = %q, want %q", got, want)
	}

	countWant := `SELECT COUNT(*) FROM "public"."orders" WHERE id > 5`
	var found bool
	for _, q := range fake.queries {
		if q == countWant {
			found = true
		}
	}
	if !found {
		t.Errorf("count query %q never issued; got %v", countWant, fake.queries)
	}
}

func TestFilterMemoryPerObject(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.ApplyWhere(ctx, "status = 'open'")
	s.ApplyOrderBy(ctx, "id DESC")

	s.SelectObject(1)
	if s.Where() != "" || s.OrderBy() != "" {
		t.Fatalf("fresh object carried filters: where=%q order=%q", s.Where(), s.OrderBy())
	}

	s.SelectObject(0)
	if s.Where() != "status = 'open'" || s.OrderBy() != "id DESC" {
		t.Errorf("filters not restored: where=%q order=%q", s.Where(), s.OrderBy())
	}
	if s.Offset() != 0 {
		t.Errorf("offset after reselect = %d, want 0", s.Offset())
	}
}

func TestClearFilters(t *testing.T) {
	s, fake := newTestSession(t)
	ctx := context.Background()

	s.ApplyWhere(ctx, "id > 5")
	s.ApplyOrderBy(ctx, "id")
	s.ClearFilters(ctx)

	if s.Where() != "" || s.OrderBy() != "" {
		t.Fatalf("filters not cleared: where=%q order=%q", s.Where(), s.OrderBy())
	}
	key := models.ObjectKey{Schema: "public", Name: "orders"}
	if f := s.FilterFor(key); f.Where != "" || f.OrderBy != "" {
		t.Errorf("memory not cleared: %+v", f)
	}
	want := `SELECT * FROM "public"."orders" LIMIT 10 OFFSET 0`
	if got := fake.lastQuery(); got != want {
		t.Errorf("page query = %q, want %q", got, want)
	}
}

func TestQueryErrorZeroesCount(t *testing.T) {
	s, fake := newTestSession(t)
	ctx := context.Background()

	s.LoadRows(ctx, true)
	fake.queryErr = errors.New(`syntax error at or near "bogus"`)
	s.ApplyWhere(ctx, "bogus")

	if s.TotalCount() != 0 {
		t.Errorf("total after error = %d, want 0", s.TotalCount())
	}
	if len(s.Rows()) != 0 {
		t.Errorf("rows after error = %d, want 0", len(s.Rows()))
	}
	if !strings.Contains(s.DataError(), "syntax error") {
		t.Errorf("data error = %q", s.DataError())
	}

	// The broken filter stays in memory so the user can fix it.
	if s.Where() != "bogus" {
		t.Errorf("where = %q, want bogus", s.Where())
	}

	fake.queryErr = nil
	s.ClearWhere(ctx)
	if s.DataError() != "" || s.TotalCount() != 25 {
		t.Errorf("panel did not recover: err=%q total=%d", s.DataError(), s.TotalCount())
	}
}

func TestLoadRowsWithoutSelection(t *testing.T) {
	fake := &fakeProvider{qualified: true, schema: "public"}
	s := New(DefaultConfig(), func(kind models.EngineKind) (db.Provider, error) {
		return fake, nil
	}, testConnections())
	ctx := context.Background()
	s.SelectConnection(ctx, 0)

	s.LoadRows(ctx, true)

	if len(fake.queries) != 0 {
		t.Errorf("queries issued with no object selected: %v", fake.queries)
	}
	if s.TotalCount() != 0 || s.DataError() != "" {
		t.Errorf("panel not empty: total=%d err=%q", s.TotalCount(), s.DataError())
	}
}
