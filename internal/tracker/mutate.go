package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/kitlog/internal/models"
	"github.com/zulandar/kitlog/internal/stage"
)

// ErrValidation marks input rejected before any state change.
var ErrValidation = errors.New("validation failed")

// CreateOpts holds parameters for creating a new build.
type CreateOpts struct {
	KitName string
	Scale   string
	Grade   string
	Status  string // defaults to the first stage when empty or unknown
	Started string // optional calendar date
	Target  string // optional calendar date
	Notes   string
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	KitName *string
	Grade   *string
	Scale   *string
	Status  *string
	Started *string // pointer to "" clears the date
	Target  *string // pointer to "" clears the date
	Notes   *string
}

// IsEmpty reports whether no field is set.
func (c Changes) IsEmpty() bool {
	return c.KitName == nil && c.Grade == nil && c.Scale == nil && c.Status == nil &&
		c.Started == nil && c.Target == nil && c.Notes == nil
}

// Validate checks the required fields of a create request.
func Validate(opts CreateOpts) error {
	var errs []string
	if strings.TrimSpace(opts.KitName) == "" {
		errs = append(errs, "kit name is required")
	}
	if strings.TrimSpace(opts.Scale) == "" {
		errs = append(errs, "scale is required")
	}
	if s := strings.TrimSpace(opts.Started); s != "" {
		if _, err := ParseDate(s); err != nil {
			errs = append(errs, fmt.Sprintf("started date %q is not a date", s))
		}
	}
	if s := strings.TrimSpace(opts.Target); s != "" {
		if _, err := ParseDate(s); err != nil {
			errs = append(errs, fmt.Sprintf("target date %q is not a date", s))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("tracker: %w: %s", ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

// NewBuild constructs a build from validated options.
func NewBuild(opts CreateOpts, id string, now time.Time) models.Build {
	return models.Build{
		ID:        id,
		KitName:   strings.TrimSpace(opts.KitName),
		Grade:     opts.Grade,
		Scale:     strings.TrimSpace(opts.Scale),
		Status:    stage.Resolve(opts.Status),
		Started:   optionalDate(opts.Started),
		Target:    optionalDate(opts.Target),
		Notes:     opts.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply merges changes into the build with the given id and refreshes its
// UpdatedAt. The returned slice preserves order. The bool is false, and the
// input returned unchanged, when no build has that id.
func Apply(builds []models.Build, id string, c Changes, now time.Time) ([]models.Build, bool) {
	idx := indexOf(builds, id)
	if idx < 0 {
		return builds, false
	}

	out := make([]models.Build, len(builds))
	copy(out, builds)

	b := out[idx]
	if c.KitName != nil {
		b.KitName = strings.TrimSpace(*c.KitName)
	}
	if c.Grade != nil {
		b.Grade = *c.Grade
	}
	if c.Scale != nil {
		b.Scale = strings.TrimSpace(*c.Scale)
	}
	if c.Status != nil {
		b.Status = *c.Status
	}
	if c.Started != nil {
		b.Started = optionalDate(*c.Started)
	}
	if c.Target != nil {
		b.Target = optionalDate(*c.Target)
	}
	if c.Notes != nil {
		b.Notes = *c.Notes
	}
	// Never move the stamp backwards, even if the clock did.
	if now.Before(b.UpdatedAt) {
		now = b.UpdatedAt
	}
	b.UpdatedAt = now
	out[idx] = b
	return out, true
}

// Remove drops the build with the given id. The bool reports whether one
// was found.
func Remove(builds []models.Build, id string) ([]models.Build, bool) {
	out := make([]models.Build, 0, len(builds))
	found := false
	for _, b := range builds {
		if b.ID == id {
			found = true
			continue
		}
		out = append(out, b)
	}
	return out, found
}

// NextStage moves status one step in direction, clamped to the workflow.
// The bool is false when the build is already at that boundary.
func NextStage(status string, direction int) (string, bool) {
	idx := stage.Index(status)
	next := min(max(idx+direction, 0), stage.Last())
	if next == idx {
		return status, false
	}
	return stage.Label(next), true
}

// Normalize repairs a loaded collection: records without an id get one and
// later duplicates of an id are dropped.
func Normalize(builds []models.Build, newID func() string) []models.Build {
	seen := make(map[string]bool, len(builds))
	out := make([]models.Build, 0, len(builds))
	for _, b := range builds {
		if b.ID == "" {
			b.ID = newID()
		}
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

func indexOf(builds []models.Build, id string) int {
	for i, b := range builds {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func optionalDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
