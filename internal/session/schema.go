package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

// Objects returns the filtered schema object list.
func (s *Session) Objects() []models.SchemaObject { return s.objects }

// SelectedObject returns the selection index into Objects, -1 when empty.
func (s *Session) SelectedObject() int { return s.selectedObject }

// CurrentObject returns the selected object, if any.
func (s *Session) CurrentObject() (models.SchemaObject, bool) {
	if s.selectedObject < 0 || s.selectedObject >= len(s.objects) {
		return models.SchemaObject{}, false
	}
	return s.objects[s.selectedObject], true
}

// SearchFilter returns the live schema search text.
func (s *Session) SearchFilter() string { return s.search }

// LoadObjects fetches the schema object list from the active provider,
// reapplies the search filter, and resets all per-list state: selection,
// pagination, metadata cache, and the data panel.
func (s *Session) LoadObjects(ctx context.Context) {
	if s.provider == nil {
		s.resetSchemaState()
		return
	}

	var (
		objects []models.SchemaObject
		err     error
	)
	if dp, ok := s.provider.(db.DocumentProvider); ok {
		objects, err = dp.ListCollections(ctx)
	} else {
		objects, err = s.provider.ListObjects(ctx, s.provider.DefaultSchema())
	}
	if err != nil {
		s.status.Pushf("Load objects error: %v", err)
		s.resetSchemaState()
		return
	}

	s.allObjects = objects
	s.applySearch()
	s.metadata = map[models.ObjectKey]models.ObjectMetadata{}
	s.viewportStart = 0
	s.resetDataPanel()
}

// resetSchemaState empties every panel that depends on an object list.
func (s *Session) resetSchemaState() {
	s.allObjects = nil
	s.objects = nil
	s.selectedObject = -1
	s.viewportStart = 0
	s.metadata = map[models.ObjectKey]models.ObjectMetadata{}
	s.resetDataPanel()
}

// SetSearchFilter applies a case-insensitive substring filter over the
// retained unfiltered list; no refetch happens. The match target is
// "schema.name", or the bare name when the schema is empty.
func (s *Session) SetSearchFilter(text string) {
	s.search = strings.TrimSpace(text)
	s.applySearch()
	s.viewportStart = 0
}

// ClearSearchFilter restores the full list in provider order.
func (s *Session) ClearSearchFilter() {
	s.SetSearchFilter("")
}

func (s *Session) applySearch() {
	if s.search == "" {
		s.objects = s.allObjects
	} else {
		needle := strings.ToLower(s.search)
		filtered := make([]models.SchemaObject, 0, len(s.allObjects))
		for _, obj := range s.allObjects {
			if strings.Contains(strings.ToLower(obj.Display()), needle) {
				filtered = append(filtered, obj)
			}
		}
		s.objects = filtered
	}
	if len(s.objects) == 0 {
		s.selectedObject = -1
		s.where = ""
		s.orderBy = ""
		s.offset = 0
	} else {
		// Route through SelectObject so the new selection's remembered
		// WHERE/ORDER BY replace the previous object's.
		s.SelectObject(0)
	}
}

// SelectObject moves the object selection and restores that object's
// remembered WHERE/ORDER BY; pagination resets to the first page. Rows are
// not fetched until LoadRows.
func (s *Session) SelectObject(idx int) {
	if idx < 0 || idx >= len(s.objects) {
		return
	}
	s.selectedObject = idx
	filter := s.filters[s.objects[idx].Key()]
	s.where = filter.Where
	s.orderBy = filter.OrderBy
	s.offset = 0
}

// MoveObjectSelection moves the selection by delta, clamping the viewport so
// the selection stays visible in a window of the given size.
func (s *Session) MoveObjectSelection(delta, window int) {
	if len(s.objects) == 0 {
		return
	}
	idx := s.selectedObject + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.objects) {
		idx = len(s.objects) - 1
	}
	s.SelectObject(idx)

	if window <= 0 {
		return
	}
	if idx < s.viewportStart {
		s.viewportStart = idx
	}
	if idx >= s.viewportStart+window {
		s.viewportStart = idx - window + 1
	}
	if s.viewportStart < 0 {
		s.viewportStart = 0
	}
}

// ToggleDetails expands or collapses the metadata rows for one object.
// Expanding fetches columns and indexes; collapsing evicts the cache entry.
// Two toggles return the cache to its prior state.
func (s *Session) ToggleDetails(ctx context.Context, schema, name string) {
	key := models.ObjectKey{Schema: schema, Name: name}
	if _, ok := s.metadata[key]; ok {
		delete(s.metadata, key)
		return
	}
	if s.provider == nil {
		return
	}

	columns, err := s.provider.ListColumns(ctx, schema, name)
	if err != nil {
		s.status.Pushf("Load columns error: %v", err)
		return
	}
	indexes, err := s.provider.ListIndexes(ctx, schema, name)
	if err != nil {
		s.status.Pushf("Load indexes error: %v", err)
		return
	}

	meta := models.ObjectMetadata{}
	for _, col := range columns {
		meta.Columns = append(meta.Columns, fmt.Sprintf("%s (%s)", col.Name, col.Type))
	}
	for _, idx := range indexes {
		meta.Indexes = append(meta.Indexes, fmt.Sprintf("%s: %s", idx.Name, idx.Definition))
	}
	s.metadata[key] = meta
}

// Metadata returns the cached detail rows for an object, if expanded.
func (s *Session) Metadata(key models.ObjectKey) (models.ObjectMetadata, bool) {
	meta, ok := s.metadata[key]
	return meta, ok
}

// MetadataCount returns the number of expanded objects.
func (s *Session) MetadataCount() int { return len(s.metadata) }

// RegisterObjectClick records a mouse-up on an object and reports whether it
// completes a double-click: a second click on the same object within the
// configured window.
func (s *Session) RegisterObjectClick(key models.ObjectKey) bool {
	now := s.now()
	double := s.lastClickKey == key && now.Sub(s.lastClickAt) < s.cfg.DoubleClickWindow
	s.lastClickKey = key
	s.lastClickAt = now
	return double
}
