// Package postgres implements the provider contract over a pgx connection
// pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

// Provider talks to a PostgreSQL server through pgxpool.
type Provider struct {
	pool *pgxpool.Pool
	cfg  models.ConnectionConfig
}

// New returns an unconnected provider.
func New() *Provider { return &Provider{} }

// Connect establishes the pool and verifies it with a ping.
func (p *Provider) Connect(ctx context.Context, cfg models.ConnectionConfig) error {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=prefer",
		cfg.Host, cfg.Port, cfg.User, cfg.Database,
	)
	if cfg.Password != "" {
		connString += fmt.Sprintf(" password=%s", cfg.Password)
	}

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return &db.ConnectionError{Name: cfg.Name, Err: fmt.Errorf("parse connection config: %w", err)}
	}
	poolConfig.MaxConns = 2
	poolConfig.MinConns = 1
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return &db.ConnectionError{Name: cfg.Name, Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return &db.ConnectionError{Name: cfg.Name, Err: err}
	}

	p.pool = pool
	p.cfg = cfg
	return nil
}

// Close releases the pool.
func (p *Provider) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// Execute runs a query and collects all rows.
func (p *Provider) Execute(ctx context.Context, query string, args ...any) ([][]any, error) {
	rows, _, err := p.ExecuteWithColumns(ctx, query, args...)
	return rows, err
}

// ExecuteWithColumns runs a query and collects rows plus ordered column names.
func (p *Provider) ExecuteWithColumns(ctx context.Context, query string, args ...any) ([][]any, []string, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, &db.QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = string(fd.Name)
	}

	var result [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, &db.QueryError{Query: query, Err: err}
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &db.QueryError{Query: query, Err: err}
	}
	return result, columns, nil
}

// ListObjects returns tables in the schema with their total relation size,
// largest first.
func (p *Provider) ListObjects(ctx context.Context, schema string) ([]models.SchemaObject, error) {
	const query = `
		SELECT n.nspname AS table_schema,
		       c.relname AS table_name,
		       pg_total_relation_size(c.oid) AS total_size
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relkind = 'r'
		  AND n.nspname = $1
		ORDER BY total_size DESC, table_name`

	rows, err := p.Execute(ctx, query, schema)
	if err != nil {
		return nil, err
	}
	return objectsFromRows(rows), nil
}

// ListColumns returns the table's columns in ordinal position order.
func (p *Provider) ListColumns(ctx context.Context, schema, name string) ([]models.ColumnInfo, error) {
	const query = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`

	rows, err := p.Execute(ctx, query, schema, name)
	if err != nil {
		return nil, err
	}
	columns := make([]models.ColumnInfo, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		columns = append(columns, models.ColumnInfo{
			Name: toString(row[0]),
			Type: toString(row[1]),
		})
	}
	return columns, nil
}

// ListIndexes returns the table's indexes with their definitions.
func (p *Provider) ListIndexes(ctx context.Context, schema, name string) ([]models.IndexInfo, error) {
	const query = `
		SELECT indexname, indexdef
		FROM pg_indexes
		WHERE schemaname = $1 AND tablename = $2
		ORDER BY indexname`

	rows, err := p.Execute(ctx, query, schema, name)
	if err != nil {
		return nil, err
	}
	indexes := make([]models.IndexInfo, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		indexes = append(indexes, models.IndexInfo{
			Name:       toString(row[0]),
			Definition: toString(row[1]),
		})
	}
	return indexes, nil
}

// QuoteIdentifier wraps an identifier in double quotes.
func (p *Provider) QuoteIdentifier(name string) string { return `"` + name + `"` }

// DefaultSchema returns the schema browsed when none is chosen.
func (p *Provider) DefaultSchema() string { return "public" }

// SchemaQualified reports that generated queries use schema.table names.
func (p *Provider) SchemaQualified() bool { return true }

func objectsFromRows(rows [][]any) []models.SchemaObject {
	objects := make([]models.SchemaObject, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		objects = append(objects, models.SchemaObject{
			Schema:    toString(row[0]),
			Name:      toString(row[1]),
			SizeBytes: toInt64(row[2]),
		})
	}
	return objects
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
