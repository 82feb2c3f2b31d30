// Package history persists console queries across runs in a local SQLite
// file. The in-memory session ring is authoritative while running; this
// store only seeds it at startup and records successful executions.
package history

import (
	"database/sql"
	_ "embed"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store manages console history persistence.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the history database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Add records one executed query for a connection.
func (s *Store) Add(connectionName, query string) error {
	_, err := s.db.Exec(`
		INSERT INTO console_history (connection_name, query)
		VALUES (?, ?)`,
		connectionName, query)
	return err
}

// Recent returns up to limit queries for a connection, oldest first, so the
// result can seed the session ring directly.
func (s *Store) Recent(connectionName string, limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT query FROM (
			SELECT id, query FROM console_history
			WHERE connection_name = ?
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC`,
		connectionName, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// Prune deletes all but the newest keep entries per connection.
func (s *Store) Prune(connectionName string, keep int) error {
	_, err := s.db.Exec(`
		DELETE FROM console_history
		WHERE connection_name = ?
		  AND id NOT IN (
			SELECT id FROM console_history
			WHERE connection_name = ?
			ORDER BY id DESC
			LIMIT ?
		)`,
		connectionName, connectionName, keep)
	return err
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
