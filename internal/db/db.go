// Package db defines the uniform data-provider contract the session engine
// speaks to every database engine through. Implementations live in the
// engine subpackages; the session never imports a driver directly.
package db

import (
	"context"
	"fmt"

	"github.com/4nzor/dbrowse/internal/models"
)

// Provider is the capability contract over a single engine. A provider is
// created unconnected; Connect must succeed before any other call. At most
// one underlying handle is open per provider, and Close is safe to call on
// a provider that never connected.
type Provider interface {
	Connect(ctx context.Context, cfg models.ConnectionConfig) error
	Close() error

	// Execute runs a query and returns all rows.
	Execute(ctx context.Context, query string, args ...any) ([][]any, error)
	// ExecuteWithColumns additionally returns column names in result order.
	ExecuteWithColumns(ctx context.Context, query string, args ...any) ([][]any, []string, error)

	// ListObjects returns tables/views in the schema, sorted by total size
	// descending then name.
	ListObjects(ctx context.Context, schema string) ([]models.SchemaObject, error)
	ListColumns(ctx context.Context, schema, name string) ([]models.ColumnInfo, error)
	ListIndexes(ctx context.Context, schema, name string) ([]models.IndexInfo, error)

	QuoteIdentifier(name string) string
	DefaultSchema() string
	// SchemaQualified reports whether generated queries should prefix the
	// object name with its schema.
	SchemaQualified() bool
}

// DocumentProvider is the extended contract for document-oriented engines.
type DocumentProvider interface {
	Provider

	ListCollections(ctx context.Context) ([]models.SchemaObject, error)
	// CountDocuments counts documents matching filterText, which is parsed
	// as a JSON filter document; unparsable text counts everything.
	CountDocuments(ctx context.Context, collection, filterText string) (int64, error)
	// SampleDocuments returns a page of documents flattened to rows. Columns
	// are the union of observed keys across the page, identity key first.
	SampleDocuments(ctx context.Context, collection string, limit, offset int, filterText string) ([][]any, []string, error)
}

// Factory creates an unconnected provider for an engine kind. The session
// receives one so tests can substitute fakes.
type Factory func(kind models.EngineKind) (Provider, error)

// ConnectionError wraps a failed connect or close.
type ConnectionError struct {
	Name string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %q: %v", e.Name, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError wraps an engine-rejected or malformed query.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string { return e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }
