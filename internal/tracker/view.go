package tracker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zulandar/kitlog/internal/models"
	"github.com/zulandar/kitlog/internal/stage"
)

// FilterAll is the filter value that selects every build.
const FilterAll = "all"

// Summary holds dashboard counts over the whole collection.
type Summary struct {
	Total         int
	SnapBuild     int
	PaintFinish   int
	ShowcaseReady int
	// ByStage counts every build per stage index, with unknown statuses
	// tallied as the first stage.
	ByStage [stage.N]int
}

// View is the filtered, sorted list shown to the user.
type View struct {
	Builds []models.Build
	Filter string
	Total  int // size of the unfiltered collection
}

// NoBuilds reports that the collection itself is empty.
func (v View) NoBuilds() bool { return v.Total == 0 }

// NoMatches reports that builds exist but none pass the filter.
func (v View) NoMatches() bool { return v.Total > 0 && len(v.Builds) == 0 }

// EmptyMessage returns the hint to show in place of an empty list, or ""
// when the view has entries.
func (v View) EmptyMessage() string {
	switch {
	case v.NoBuilds():
		return "Log your first build to see it appear here."
	case v.NoMatches():
		return "No builds match this filter. Try a different stage."
	}
	return ""
}

// ParseFilter normalizes a user-supplied filter. Empty and "all" select
// everything; otherwise s must name a stage (case-insensitive).
func ParseFilter(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, FilterAll) {
		return FilterAll, nil
	}
	label, ok := stage.Lookup(s)
	if !ok {
		return "", fmt.Errorf("tracker: %w: unknown stage %q; valid stages: %s",
			ErrValidation, s, strings.Join(stage.All(), ", "))
	}
	return label, nil
}

// DeriveSummary counts builds overall and in the headline stages.
func DeriveSummary(builds []models.Build) Summary {
	s := Summary{Total: len(builds)}
	for _, b := range builds {
		s.ByStage[stage.Index(b.Status)]++
		switch b.Status {
		case stage.SnapBuild:
			s.SnapBuild++
		case stage.PaintFinish:
			s.PaintFinish++
		case stage.ShowcaseReady:
			s.ShowcaseReady++
		}
	}
	return s
}

// DeriveView filters builds to the given stage (or all) and orders them by
// stage, most recently touched first within a stage.
func DeriveView(builds []models.Build, filter string) View {
	if filter == "" {
		filter = FilterAll
	}
	out := make([]models.Build, 0, len(builds))
	for _, b := range builds {
		if filter == FilterAll || b.Status == filter {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Build) int {
		if d := stage.Index(a.Status) - stage.Index(b.Status); d != 0 {
			return d
		}
		return b.Touched().Compare(a.Touched())
	})
	return View{Builds: out, Filter: filter, Total: len(builds)}
}
