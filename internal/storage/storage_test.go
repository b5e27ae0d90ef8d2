package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/kitlog/internal/config"
	"github.com/zulandar/kitlog/internal/models"
)

func TestOpen_FileDriver(t *testing.T) {
	dir := t.TempDir()
	p, err := Open(config.StorageConfig{Driver: config.DriverFile, Dir: dir, Slot: "slot"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	fs, ok := p.(*FileSlot)
	if !ok {
		t.Fatalf("Open returned %T, want *FileSlot", p)
	}
	if fs.Path() != filepath.Join(dir, "slot.json") {
		t.Errorf("Path() = %q", fs.Path())
	}
}

func TestOpen_SQLiteDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitlog.db")
	p, err := Open(config.StorageConfig{Driver: config.DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := p.(*SQL); !ok {
		t.Fatalf("Open returned %T, want *SQL", p)
	}
	if err := p.Save([]models.Build{{ID: "x", KitName: "Zaku", Scale: "1/144"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	builds, err := p.Load()
	if err != nil || len(builds) != 1 {
		t.Errorf("Load() = %d, %v; want 1 build", len(builds), err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.StorageConfig{Driver: "localstorage"})
	if err == nil || !strings.Contains(err.Error(), "unknown driver") {
		t.Errorf("error = %v, want unknown driver", err)
	}
}

func TestMemory_FailureInjection(t *testing.T) {
	m := NewMemory(models.Build{ID: "a"})
	builds, err := m.Load()
	if err != nil || len(builds) != 1 {
		t.Fatalf("Load() = %v, %v", builds, err)
	}

	boom := errors.New("disk full")
	m.SaveErr = boom
	if err := m.Save(nil); !errors.Is(err, boom) {
		t.Errorf("Save() error = %v, want %v", err, boom)
	}
	if m.Saves != 0 {
		t.Errorf("Saves = %d, want 0 after failed save", m.Saves)
	}

	m.LoadErr = boom
	if _, err := m.Load(); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
}
