package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

// Where returns the live WHERE text for the selected object.
func (s *Session) Where() string { return s.where }

// OrderBy returns the live ORDER BY text for the selected object.
func (s *Session) OrderBy() string { return s.orderBy }

// Offset returns the current pagination offset.
func (s *Session) Offset() int { return s.offset }

// TotalCount returns the last known row count for the current filter.
func (s *Session) TotalCount() int { return s.totalCount }

// Rows returns the current page.
func (s *Session) Rows() [][]any { return s.rows }

// Columns returns the current page's column names.
func (s *Session) Columns() []string { return s.columns }

// DataError returns the inline error of the last page load, empty on
// success.
func (s *Session) DataError() string { return s.dataErr }

// DataElapsed returns the duration of the last page load.
func (s *Session) DataElapsed() time.Duration { return s.dataElapsed }

func (s *Session) resetDataPanel() {
	s.where = ""
	s.orderBy = ""
	s.offset = 0
	s.totalCount = 0
	s.rows = nil
	s.columns = nil
	s.dataErr = ""
	s.dataElapsed = 0
	if obj, ok := s.CurrentObject(); ok {
		filter := s.filters[obj.Key()]
		s.where = filter.Where
		s.orderBy = filter.OrderBy
	}
}

// LoadRows runs the count query and fetches the current page for the
// selected object. With resetOffset the pagination rewinds to the first
// page. Both the WHERE and ORDER BY text are interpolated verbatim.
func (s *Session) LoadRows(ctx context.Context, resetOffset bool) {
	obj, ok := s.CurrentObject()
	if s.provider == nil || !ok {
		s.rows = nil
		s.columns = nil
		s.totalCount = 0
		s.dataErr = ""
		return
	}
	if resetOffset {
		s.offset = 0
	}

	start := s.now()
	if dp, isDoc := s.provider.(db.DocumentProvider); isDoc {
		s.loadDocuments(ctx, dp, obj)
	} else {
		s.loadTable(ctx, obj)
	}
	s.dataElapsed = s.now().Sub(start)
	if s.dataErr == "" {
		s.status.Pushf("Query executed in %.3fs", s.dataElapsed.Seconds())
	}
}

func (s *Session) loadTable(ctx context.Context, obj models.SchemaObject) {
	countQuery := s.buildCountQuery(obj)
	countRes, err := s.provider.Execute(ctx, countQuery)
	if err != nil {
		s.failPage(err.Error())
		return
	}
	s.totalCount = firstCount(countRes)

	selectQuery := s.buildSelectQuery(obj)
	s.status.Pushf("SQL: %s", selectQuery)
	rows, columns, err := s.provider.ExecuteWithColumns(ctx, selectQuery)
	if err != nil {
		s.failPage(err.Error())
		return
	}
	s.rows = rows
	s.columns = columns
	s.dataErr = ""
}

func (s *Session) loadDocuments(ctx context.Context, dp db.DocumentProvider, obj models.SchemaObject) {
	count, err := dp.CountDocuments(ctx, obj.Name, s.where)
	if err != nil {
		s.failPage(err.Error())
		return
	}
	s.totalCount = int(count)

	rows, columns, err := dp.SampleDocuments(ctx, obj.Name, s.cfg.PageSize, s.offset, s.where)
	if err != nil {
		s.failPage(err.Error())
		return
	}
	s.rows = rows
	s.columns = columns
	s.dataErr = ""
	s.status.Pushf("Collection %s, filter: %s", obj.Name, orEmptyDoc(s.where))
}

// failPage records an inline QueryError; the previous page is discarded and
// the count shows zero.
func (s *Session) failPage(msg string) {
	s.rows = nil
	s.columns = nil
	s.totalCount = 0
	s.dataErr = msg
	s.status.Pushf("Query error: %s", msg)
}

// buildCountQuery builds the COUNT over the qualified object, appending the
// WHERE text verbatim when present.
func (s *Session) buildCountQuery(obj models.SchemaObject) string {
	query := "SELECT COUNT(*) FROM " + s.qualifiedName(obj)
	if strings.TrimSpace(s.where) != "" {
		query += " WHERE " + s.where
	}
	return query
}

// buildSelectQuery builds the page query: SELECT * with WHERE, ORDER BY,
// LIMIT and OFFSET.
func (s *Session) buildSelectQuery(obj models.SchemaObject) string {
	query := "SELECT * FROM " + s.qualifiedName(obj)
	if strings.TrimSpace(s.where) != "" {
		query += " WHERE " + s.where
	}
	if strings.TrimSpace(s.orderBy) != "" {
		query += " ORDER BY " + s.orderBy
	}
	return query + fmt.Sprintf(" LIMIT %d OFFSET %d", s.cfg.PageSize, s.offset)
}

func (s *Session) qualifiedName(obj models.SchemaObject) string {
	name := s.provider.QuoteIdentifier(obj.Name)
	if s.provider.SchemaQualified() && obj.Schema != "" {
		return s.provider.QuoteIdentifier(obj.Schema) + "." + name
	}
	return name
}

// ApplyWhere commits new WHERE text for the selected object: it persists
// into the per-object filter memory, rewinds to the first page, and reloads.
func (s *Session) ApplyWhere(ctx context.Context, text string) {
	obj, ok := s.CurrentObject()
	if !ok {
		return
	}
	s.where = strings.TrimSpace(text)
	s.storeFilter(obj.Key())
	s.LoadRows(ctx, true)
}

// ApplyOrderBy commits new ORDER BY text, persists it, and reloads from the
// first page.
func (s *Session) ApplyOrderBy(ctx context.Context, text string) {
	obj, ok := s.CurrentObject()
	if !ok {
		return
	}
	s.orderBy = strings.TrimSpace(text)
	s.storeFilter(obj.Key())
	s.LoadRows(ctx, true)
}

// ClearWhere empties the WHERE text, persists that, and reloads.
func (s *Session) ClearWhere(ctx context.Context) { s.ApplyWhere(ctx, "") }

// ClearOrderBy empties the ORDER BY text, persists that, and reloads.
func (s *Session) ClearOrderBy(ctx context.Context) { s.ApplyOrderBy(ctx, "") }

// ClearFilters empties both fields for the selected object and reloads.
func (s *Session) ClearFilters(ctx context.Context) {
	obj, ok := s.CurrentObject()
	if !ok {
		return
	}
	s.where = ""
	s.orderBy = ""
	s.storeFilter(obj.Key())
	s.LoadRows(ctx, true)
}

func (s *Session) storeFilter(key models.ObjectKey) {
	s.filters[key] = models.FilterState{Where: s.where, OrderBy: s.orderBy}
}

// FilterFor returns the remembered filter for an object.
func (s *Session) FilterFor(key models.ObjectKey) models.FilterState {
	return s.filters[key]
}

// NextPage advances one page when more rows exist; filters are untouched.
func (s *Session) NextPage(ctx context.Context) {
	if s.offset+s.cfg.PageSize >= s.totalCount {
		return
	}
	s.offset += s.cfg.PageSize
	s.LoadRows(ctx, false)
}

// PrevPage rewinds one page; filters are untouched.
func (s *Session) PrevPage(ctx context.Context) {
	if s.offset == 0 {
		return
	}
	s.offset -= s.cfg.PageSize
	if s.offset < 0 {
		s.offset = 0
	}
	s.LoadRows(ctx, false)
}

func firstCount(rows [][]any) int {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0
	}
	switch n := rows[0][0].(type) {
	case int64:
		return int(n)
	case int32:
		return int(n)
	case int:
		return n
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case string:
		var out int
		_, _ = fmt.Sscan(n, &out)
		return out
	case []byte:
		var out int
		_, _ = fmt.Sscan(string(n), &out)
		return out
	default:
		return 0
	}
}

func orEmptyDoc(filter string) string {
	if strings.TrimSpace(filter) == "" {
		return "{}"
	}
	return filter
}
