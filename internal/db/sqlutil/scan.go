// Package sqlutil holds row-scanning helpers shared by the database/sql
// based providers.
package sqlutil

import (
	"database/sql"
	"fmt"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

// ScanAll drains rows into generic values plus ordered column names.
// []byte cells are converted to string; the mysql driver returns text
// columns as byte slices.
func ScanAll(rows *sql.Rows, query string) ([][]any, []string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, &db.QueryError{Query: query, Err: err}
	}

	var result [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, &db.QueryError{Query: query, Err: err}
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &db.QueryError{Query: query, Err: err}
	}
	return result, columns, nil
}

// ObjectsFromRows converts (schema, name, size) rows into schema objects.
func ObjectsFromRows(rows [][]any) []models.SchemaObject {
	objects := make([]models.SchemaObject, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		objects = append(objects, models.SchemaObject{
			Schema:    ToString(row[0]),
			Name:      ToString(row[1]),
			SizeBytes: ToInt64(row[2]),
		})
	}
	return objects
}

// ColumnsFromRows converts (name, type) rows into column infos.
func ColumnsFromRows(rows [][]any) []models.ColumnInfo {
	columns := make([]models.ColumnInfo, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		columns = append(columns, models.ColumnInfo{
			Name: ToString(row[0]),
			Type: ToString(row[1]),
		})
	}
	return columns
}

// IndexesFromRows converts (name, definition) rows into index infos.
func IndexesFromRows(rows [][]any) []models.IndexInfo {
	indexes := make([]models.IndexInfo, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		indexes = append(indexes, models.IndexInfo{
			Name:       ToString(row[0]),
			Definition: ToString(row[1]),
		})
	}
	return indexes
}

// ToString renders a scanned value for display, empty for NULL.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return fmt.Sprintf("%v", v)
}

// ToInt64 coerces the numeric types drivers hand back for counts and sizes.
func ToInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case []byte:
		var out int64
		_, _ = fmt.Sscan(string(n), &out)
		return out
	case string:
		var out int64
		_, _ = fmt.Sscan(n, &out)
		return out
	default:
		return 0
	}
}
