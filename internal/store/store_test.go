package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/4nzor/dbrowse/internal/models"
)

func TestLoadAllMissingFile(t *testing.T) {
	s := New(t.TempDir())

	configs, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if configs != nil {
		t.Errorf("configs = %v, want nil", configs)
	}
}

func TestLoadAllSkipsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	content := `
prod:
  engine: postgres
  host: db.example.com
  port: 5432
  database: app
  user: app
broken:
  engine: [not, a, string]
noengine:
  host: somewhere
  database: x
local:
  engine: sqlite
  database: /tmp/app.db
`
	if err := os.WriteFile(filepath.Join(dir, "connections.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s := New(dir)
	configs, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(configs) != 2 {
		t.Fatalf("configs = %d, want 2: %+v", len(configs), configs)
	}
	// Sorted by name.
	if configs[0].Name != "local" || configs[1].Name != "prod" {
		t.Errorf("order = %q, %q", configs[0].Name, configs[1].Name)
	}
	if configs[1].Host != "db.example.com" || configs[1].Engine != models.EnginePostgres {
		t.Errorf("prod = %+v", configs[1])
	}
}

func TestSaveUpserts(t *testing.T) {
	s := New(t.TempDir())

	first := models.ConnectionConfig{
		Name: "primary", Engine: models.EnginePostgres,
		Host: "localhost", Port: 5432, Database: "app", User: "app",
	}
	if err := s.Save(first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.Name = "replica"
	second.Host = "replica.local"
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	// Overwrite the first entry.
	first.Database = "app_v2"
	if err := s.Save(first); err != nil {
		t.Fatal(err)
	}

	configs, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(configs) != 2 {
		t.Fatalf("configs = %d, want 2", len(configs))
	}
	if configs[0].Name != "primary" || configs[0].Database != "app_v2" {
		t.Errorf("primary = %+v", configs[0])
	}
	if configs[1].Name != "replica" || configs[1].Host != "replica.local" {
		t.Errorf("replica = %+v", configs[1])
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := New(t.TempDir())
	err := s.Save(models.ConnectionConfig{Name: "bad", Engine: "oracle"})
	if err == nil {
		t.Fatal("expected error for unsupported engine")
	}
}
