package models

import "fmt"

// EngineKind identifies a supported database engine.
type EngineKind string

const (
	EnginePostgres EngineKind = "postgres"
	EngineMySQL    EngineKind = "mysql"
	EngineSQLite   EngineKind = "sqlite"
	EngineMongoDB  EngineKind = "mongodb"
)

// Document reports whether the engine is document-oriented rather than
// row-oriented SQL.
func (k EngineKind) Document() bool {
	return k == EngineMongoDB
}

// DefaultPort returns the conventional port for the engine, 0 when the
// engine is file-backed.
func (k EngineKind) DefaultPort() int {
	switch k {
	case EnginePostgres:
		return 5432
	case EngineMySQL:
		return 3306
	case EngineMongoDB:
		return 27017
	default:
		return 0
	}
}

// ParseEngineKind validates a user-supplied engine name.
func ParseEngineKind(s string) (EngineKind, error) {
	switch EngineKind(s) {
	case EnginePostgres, EngineMySQL, EngineSQLite, EngineMongoDB:
		return EngineKind(s), nil
	}
	return "", fmt.Errorf("unsupported engine kind: %q", s)
}
