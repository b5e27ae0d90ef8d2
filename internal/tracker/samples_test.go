package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/zulandar/kitlog/internal/stage"
)

func TestSamples(t *testing.T) {
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("sample-%d", n)
	}
	builds := Samples(t0, newID)
	if len(builds) != 4 {
		t.Fatalf("len = %d, want 4", len(builds))
	}

	seen := map[string]bool{}
	statuses := map[string]bool{}
	for i, b := range builds {
		if seen[b.ID] {
			t.Errorf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
		statuses[b.Status] = true
		if !stage.Valid(b.Status) {
			t.Errorf("sample %d has invalid status %q", i, b.Status)
		}
		wantCreated := t0.Add(-time.Duration(2*i) * 24 * time.Hour)
		wantUpdated := t0.Add(-time.Duration(i) * 24 * time.Hour)
		if !b.CreatedAt.Equal(wantCreated) || !b.UpdatedAt.Equal(wantUpdated) {
			t.Errorf("sample %d stamps = %v / %v, want %v / %v", i, b.CreatedAt, b.UpdatedAt, wantCreated, wantUpdated)
		}
		if b.KitName == "" || b.Scale == "" {
			t.Errorf("sample %d missing required fields", i)
		}
	}
	if len(statuses) != 4 {
		t.Errorf("samples should use distinct stages, got %v", statuses)
	}
}
