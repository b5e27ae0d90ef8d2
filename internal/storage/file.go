package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zulandar/kitlog/internal/models"
	"github.com/zulandar/kitlog/internal/tracker"
)

// FileSlot persists the collection as a JSON array in a single named file.
type FileSlot struct {
	dir  string
	slot string
}

// NewFileSlot returns a slot stored at dir/slot.json.
func NewFileSlot(dir, slot string) *FileSlot {
	return &FileSlot{dir: dir, slot: slot}
}

// Path returns the file backing the slot.
func (f *FileSlot) Path() string {
	return filepath.Join(f.dir, f.slot+".json")
}

// Load reads the slot. A missing file is an empty collection. Content that is
// not a JSON array is an error; array elements that are not build objects are
// skipped. Timestamps that do not parse load as the zero time.
func (f *FileSlot) Load() ([]models.Build, error) {
	data, err := os.ReadFile(f.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", f.Path(), err)
	}
	return decodeBuilds(data)
}

// Save writes the whole collection, replacing the file atomically.
func (f *FileSlot) Save(builds []models.Build) error {
	if builds == nil {
		builds = []models.Build{}
	}
	data, err := json.MarshalIndent(builds, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal builds: %w", err)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("storage: create %s: %w", f.dir, err)
	}

	path := f.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage: replace %s: %w", path, err)
	}
	return nil
}

// storedBuild decodes one slot element. Its stamps shadow the embedded
// time.Time fields so that any accepted date text, or garbage, still yields
// a build.
type storedBuild struct {
	models.Build
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

func decodeBuilds(data []byte) ([]models.Build, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("storage: decode builds: %w", err)
	}
	if raw == nil {
		// JSON null
		return nil, fmt.Errorf("storage: decode builds: not an array")
	}
	builds := make([]models.Build, 0, len(raw))
	for _, r := range raw {
		if t := bytes.TrimSpace(r); len(t) == 0 || t[0] != '{' {
			continue
		}
		var sb storedBuild
		if err := json.Unmarshal(r, &sb); err != nil {
			continue
		}
		b := sb.Build
		b.CreatedAt = parseStamp(sb.CreatedAt)
		b.UpdatedAt = parseStamp(sb.UpdatedAt)
		builds = append(builds, b)
	}
	return builds, nil
}

// parseStamp reads a stored timestamp: date text in any layout ParseDate
// accepts, or epoch milliseconds. Anything else is the zero time.
func parseStamp(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := tracker.ParseDate(s)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
