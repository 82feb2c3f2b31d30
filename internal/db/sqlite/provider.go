// Package sqlite implements the provider contract for file-backed SQLite
// databases. The descriptor's Database field is the file path.
package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/db/sqlutil"
	"github.com/4nzor/dbrowse/internal/models"
)

// Provider reads a local SQLite database file.
type Provider struct {
	conn *sqlx.DB
	cfg  models.ConnectionConfig
}

// New returns an unconnected provider.
func New() *Provider { return &Provider{} }

func (p *Provider) Connect(ctx context.Context, cfg models.ConnectionConfig) error {
	conn, err := sqlx.Open("sqlite3", cfg.Database)
	if err != nil {
		return &db.ConnectionError{Name: cfg.Name, Err: err}
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return &db.ConnectionError{Name: cfg.Name, Err: err}
	}

	p.conn = conn
	p.cfg = cfg
	return nil
}

func (p *Provider) Close() error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

func (p *Provider) Execute(ctx context.Context, query string, args ...any) ([][]any, error) {
	rows, _, err := p.ExecuteWithColumns(ctx, query, args...)
	return rows, err
}

func (p *Provider) ExecuteWithColumns(ctx context.Context, query string, args ...any) ([][]any, []string, error) {
	rows, err := p.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, &db.QueryError{Query: query, Err: err}
	}
	defer func() { _ = rows.Close() }()
	return sqlutil.ScanAll(rows, query)
}

// ListObjects lists user tables. SQLite does not expose per-table sizes, so
// every object reports zero bytes and the list comes back name-ordered.
func (p *Provider) ListObjects(ctx context.Context, _ string) ([]models.SchemaObject, error) {
	const query = `
		SELECT 'main' AS table_schema, name AS table_name, 0 AS total_size
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	rows, err := p.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	return sqlutil.ObjectsFromRows(rows), nil
}

func (p *Provider) ListColumns(ctx context.Context, _, name string) ([]models.ColumnInfo, error) {
	const query = `
		SELECT name, type
		FROM pragma_table_info(?)
		ORDER BY cid`

	rows, err := p.Execute(ctx, query, name)
	if err != nil {
		return nil, err
	}
	return sqlutil.ColumnsFromRows(rows), nil
}

func (p *Provider) ListIndexes(ctx context.Context, _, name string) ([]models.IndexInfo, error) {
	const query = `
		SELECT name, COALESCE(sql, '') AS indexdef
		FROM sqlite_master
		WHERE type = 'index' AND tbl_name = ?
		ORDER BY name`

	rows, err := p.Execute(ctx, query, name)
	if err != nil {
		return nil, err
	}
	return sqlutil.IndexesFromRows(rows), nil
}

func (p *Provider) QuoteIdentifier(name string) string { return `"` + name + `"` }

func (p *Provider) DefaultSchema() string { return "main" }

// SchemaQualified is false: generated queries use the bare table name.
func (p *Provider) SchemaQualified() bool { return false }
