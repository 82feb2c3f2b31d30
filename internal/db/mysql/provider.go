// Package mysql implements the provider contract over database/sql with the
// go-sql-driver, wrapped in sqlx.
package mysql

import (
	"context"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/db/sqlutil"
	"github.com/4nzor/dbrowse/internal/models"
)

// Provider talks to a MySQL (or MariaDB) server.
type Provider struct {
	conn *sqlx.DB
	cfg  models.ConnectionConfig
}

// New returns an unconnected provider.
func New() *Provider { return &Provider{} }

// Connect opens the handle and verifies it with a ping.
func (p *Provider) Connect(ctx context.Context, cfg models.ConnectionConfig) error {
	mc := gomysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true

	conn, err := sqlx.Open("mysql", mc.FormatDSN())
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

// Close closes the handle.
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

// ListObjects lists base tables in the current database with
// data+index size, largest first. The schema argument is ignored; MySQL
// always scopes to DATABASE().
func (p *Provider) ListObjects(ctx context.Context, _ string) ([]models.SchemaObject, error) {
	const query = `
		SELECT table_schema, table_name,
		       COALESCE(data_length + index_length, 0) AS total_size
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type = 'BASE TABLE'
		ORDER BY total_size DESC, table_name`

	rows, err := p.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	return sqlutil.ObjectsFromRows(rows), nil
}

func (p *Provider) ListColumns(ctx context.Context, schema, name string) ([]models.ColumnInfo, error) {
	const query = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position`

	rows, err := p.Execute(ctx, query, schema, name)
	if err != nil {
		return nil, err
	}
	return sqlutil.ColumnsFromRows(rows), nil
}

// ListIndexes reports index name and type; MySQL has no single definition
// string, so the type stands in for it.
func (p *Provider) ListIndexes(ctx context.Context, schema, name string) ([]models.IndexInfo, error) {
	const query = `
		SELECT DISTINCT index_name, index_type
		FROM information_schema.statistics
		WHERE table_schema = ? AND table_name = ?
		ORDER BY index_name`

	rows, err := p.Execute(ctx, query, schema, name)
	if err != nil {
		return nil, err
	}
	return sqlutil.IndexesFromRows(rows), nil
}

// QuoteIdentifier wraps an identifier in backticks.
func (p *Provider) QuoteIdentifier(name string) string { return "`" + name + "`" }

// DefaultSchema is empty; listing always uses the connected database.
func (p *Provider) DefaultSchema() string { return "" }

// SchemaQualified reports that listed objects carry a usable schema prefix.
func (p *Provider) SchemaQualified() bool { return true }
