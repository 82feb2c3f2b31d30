package components

import (
	"strings"
	"testing"

	"github.com/4nzor/dbrowse/internal/models"
)

func setField(f *ConnectionForm, idx int, value string) {
	f.inputs[idx].SetValue(value)
}

func TestDescriptorDefaultsPort(t *testing.T) {
	f := NewConnectionForm()
	setField(f, fieldName, "primary")
	setField(f, fieldEngine, "postgres")
	setField(f, fieldDatabase, "app")
	setField(f, fieldUser, "app")

	cfg, err := f.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 5432 {
		t.Errorf("port = %d, want 5432", cfg.Port)
	}
	if cfg.Host != "localhost" {
		t.Errorf("host = %q, want localhost default", cfg.Host)
	}
	if cfg.Engine != models.EnginePostgres {
		t.Errorf("engine = %q", cfg.Engine)
	}
}

func TestDescriptorRejectsBadPort(t *testing.T) {
	f := NewConnectionForm()
	setField(f, fieldName, "primary")
	setField(f, fieldEngine, "mysql")
	setField(f, fieldPort, "not-a-port")
	setField(f, fieldDatabase, "app")
	setField(f, fieldUser, "app")

	_, err := f.Descriptor()
	if err == nil {
		t.Fatal("expected error for non-numeric port")
	}
	if !strings.Contains(err.Error(), "port must be a number") {
		t.Errorf("error = %v", err)
	}
}

func TestDescriptorRejectsUnknownEngine(t *testing.T) {
	f := NewConnectionForm()
	setField(f, fieldName, "primary")
	setField(f, fieldEngine, "oracle")
	setField(f, fieldDatabase, "app")

	if _, err := f.Descriptor(); err == nil {
		t.Fatal("expected error for unsupported engine")
	}
}

func TestDescriptorRejectsIncomplete(t *testing.T) {
	f := NewConnectionForm()
	setField(f, fieldEngine, "postgres")
	setField(f, fieldDatabase, "app")

	_, err := f.Descriptor()
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	if !strings.Contains(err.Error(), "incomplete descriptor") {
		t.Errorf("error = %v", err)
	}
}

func TestSQLiteNeedsOnlyDatabase(t *testing.T) {
	f := NewConnectionForm()
	setField(f, fieldName, "local")
	setField(f, fieldEngine, "sqlite")
	setField(f, fieldHost, "")
	setField(f, fieldDatabase, "/tmp/app.db")

	cfg, err := f.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine != models.EngineSQLite || cfg.Database != "/tmp/app.db" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestMoveFieldWraps(t *testing.T) {
	f := NewConnectionForm()
	if f.active != fieldName {
		t.Fatalf("initial field = %d", f.active)
	}
	f.MoveField(-1)
	if f.active != fieldPassword {
		t.Errorf("after wrap up: field = %d, want password", f.active)
	}
	f.MoveField(1)
	if f.active != fieldName {
		t.Errorf("after wrap down: field = %d, want name", f.active)
	}
}
