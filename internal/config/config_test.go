package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
storage:
  driver: sqlite
  dir: /var/lib/kitlog
  slot: workbench.v2
  path: /var/lib/kitlog/builds.db
  mysql:
    host: 10.0.0.5
    port: 3307
    database: kitlog_alice
    user: alice
    password: hunter2

dashboard:
  port: 9090

log:
  level: debug
`

const minimalYAML = `
log:
  level: warn
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, DriverSQLite)
	}
	if cfg.Storage.Dir != "/var/lib/kitlog" {
		t.Errorf("Storage.Dir = %q, want %q", cfg.Storage.Dir, "/var/lib/kitlog")
	}
	if cfg.Storage.Slot != "workbench.v2" {
		t.Errorf("Storage.Slot = %q, want %q", cfg.Storage.Slot, "workbench.v2")
	}
	if cfg.Storage.Path != "/var/lib/kitlog/builds.db" {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, "/var/lib/kitlog/builds.db")
	}
	if cfg.Storage.MySQL.Host != "10.0.0.5" {
		t.Errorf("MySQL.Host = %q, want %q", cfg.Storage.MySQL.Host, "10.0.0.5")
	}
	if cfg.Storage.MySQL.Port != 3307 {
		t.Errorf("MySQL.Port = %d, want %d", cfg.Storage.MySQL.Port, 3307)
	}
	if cfg.Storage.MySQL.Database != "kitlog_alice" {
		t.Errorf("MySQL.Database = %q, want %q", cfg.Storage.MySQL.Database, "kitlog_alice")
	}
	if cfg.Storage.MySQL.User != "alice" || cfg.Storage.MySQL.Password != "hunter2" {
		t.Errorf("MySQL credentials = %q/%q", cfg.Storage.MySQL.User, cfg.Storage.MySQL.Password)
	}
	if cfg.Dashboard.Port != 9090 {
		t.Errorf("Dashboard.Port = %d, want %d", cfg.Dashboard.Port, 9090)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestParse_MinimalConfig_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Driver != DriverFile {
		t.Errorf("Storage.Driver = %q, want %q (default)", cfg.Storage.Driver, DriverFile)
	}
	if cfg.Storage.Slot != DefaultSlot {
		t.Errorf("Storage.Slot = %q, want %q (default)", cfg.Storage.Slot, DefaultSlot)
	}
	if cfg.Storage.Dir == "" {
		t.Error("Storage.Dir should default to a data directory")
	}
	if cfg.Storage.Path != filepath.Join(cfg.Storage.Dir, "kitlog.db") {
		t.Errorf("Storage.Path = %q, want it derived from Dir", cfg.Storage.Path)
	}
	if cfg.Storage.MySQL.Host != "127.0.0.1" {
		t.Errorf("MySQL.Host = %q, want %q (default)", cfg.Storage.MySQL.Host, "127.0.0.1")
	}
	if cfg.Storage.MySQL.Port != 3306 {
		t.Errorf("MySQL.Port = %d, want %d (default)", cfg.Storage.MySQL.Port, 3306)
	}
	if cfg.Storage.MySQL.Database != "kitlog" {
		t.Errorf("MySQL.Database = %q, want %q (default)", cfg.Storage.MySQL.Database, "kitlog")
	}
	if cfg.Dashboard.Port != 8080 {
		t.Errorf("Dashboard.Port = %d, want %d (default)", cfg.Dashboard.Port, 8080)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q (default)", cfg.Log.Level, "info")
	}
}

func TestParse_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg, err := Parse([]byte("storage:\n  dir: ~/models\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(home, "models"); cfg.Storage.Dir != want {
		t.Errorf("Storage.Dir = %q, want %q", cfg.Storage.Dir, want)
	}
}

func TestParse_UnknownDriver(t *testing.T) {
	_, err := Parse([]byte("storage:\n  driver: redis\n"))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "storage.driver") {
		t.Errorf("error = %q, want to mention storage.driver", err.Error())
	}
}

func TestParse_SlotWithSeparator(t *testing.T) {
	_, err := Parse([]byte("storage:\n  slot: ../escape\n"))
	if err == nil {
		t.Fatal("expected error for slot with path separator")
	}
	if !strings.Contains(err.Error(), "storage.slot") {
		t.Errorf("error = %q, want to mention storage.slot", err.Error())
	}
}

func TestParse_MultipleValidationErrors(t *testing.T) {
	yaml := `
storage:
  driver: postgres
dashboard:
  port: 70000
log:
  level: verbose
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"storage.driver", "dashboard.port", "log.level"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
	if !strings.Contains(msg, "config: validation failed:") {
		t.Errorf("error = %q, want validation prefix", msg)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte(":::invalid"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config: parse:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: parse:")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kitlog.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, DriverSQLite)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/kitlog.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: read")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, DriverFile)
	}
}

func TestLoadOrDefault_InvalidFileStillFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitlog.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Fatal("expected validation error from an existing but invalid file")
	}
}

func TestLoad_Fixtures(t *testing.T) {
	tests := []struct {
		file    string
		wantErr string
	}{
		{"testdata/valid_full.yaml", ""},
		{"testdata/valid_minimal.yaml", ""},
		{"testdata/bad_driver.yaml", "storage.driver"},
		{"testdata/invalid_yaml.yaml", "config: parse:"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Load(tt.file)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}
