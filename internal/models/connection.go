package models

import "fmt"

// ConnectionConfig describes a saved database connection. Descriptors are
// keyed by Name and immutable once loaded for the session.
type ConnectionConfig struct {
	Name     string     `yaml:"name"`
	Engine   EngineKind `yaml:"engine"`
	Host     string     `yaml:"host"`
	Port     int        `yaml:"port"`
	Database string     `yaml:"database"`
	User     string     `yaml:"user"`
	Password string     `yaml:"password"`
}

// Label returns the display form used in the connection list.
func (c ConnectionConfig) Label() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Database)
}

// Valid reports whether the descriptor carries enough to attempt a connect.
func (c ConnectionConfig) Valid() bool {
	if c.Name == "" || c.Engine == "" {
		return false
	}
	if _, err := ParseEngineKind(string(c.Engine)); err != nil {
		return false
	}
	// SQLite only needs a file path in Database.
	if c.Engine == EngineSQLite {
		return c.Database != ""
	}
	return c.Host != "" && c.Database != ""
}
