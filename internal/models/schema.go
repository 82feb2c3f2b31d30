package models

// SchemaObject is a table, view, or document collection with a display size.
// Providers return objects sorted by SizeBytes descending, then name.
type SchemaObject struct {
	Schema    string
	Name      string
	SizeBytes int64
}

// Key returns the cache key for per-object state.
func (o SchemaObject) Key() ObjectKey {
	return ObjectKey{Schema: o.Schema, Name: o.Name}
}

// Display returns "schema.name", or the bare name when the schema is empty.
func (o SchemaObject) Display() string {
	if o.Schema == "" {
		return o.Name
	}
	return o.Schema + "." + o.Name
}

// ObjectKey identifies a schema object across caches.
type ObjectKey struct {
	Schema string
	Name   string
}

// ColumnInfo is one column as reported by a provider.
type ColumnInfo struct {
	Name string
	Type string
}

// IndexInfo is one index as reported by a provider.
type IndexInfo struct {
	Name       string
	Definition string
}

// ObjectMetadata is the expanded detail view for one object. Columns hold
// "name (type)" lines, Indexes hold "name: definition" lines.
type ObjectMetadata struct {
	Columns []string
	Indexes []string
}

// FilterState is the WHERE/ORDER BY text remembered per object. Both fields
// are interpolated into generated SQL verbatim; see the README warning.
type FilterState struct {
	Where   string
	OrderBy string
}
