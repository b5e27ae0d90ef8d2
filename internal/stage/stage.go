// Package stage defines the fixed, ordered workflow a build moves through.
package stage

import (
	"fmt"
	"math"
	"strings"
)

// Stage labels in canonical order.
const (
	Backlog       = "Backlog"
	Preparation   = "Preparation"
	SnapBuild     = "Snap Build"
	Detailing     = "Detailing"
	PaintFinish   = "Paint & Finish"
	ShowcaseReady = "Showcase Ready"
)

var labels = [...]string{
	Backlog,
	Preparation,
	SnapBuild,
	Detailing,
	PaintFinish,
	ShowcaseReady,
}

// N is the number of stages, usable as an array length.
const N = len(labels)

// All returns the stage labels in canonical order. The slice is a copy.
func All() []string {
	out := make([]string, len(labels))
	copy(out, labels[:])
	return out
}

// Count returns the number of stages.
func Count() int { return len(labels) }

// Last returns the index of the terminal stage.
func Last() int { return len(labels) - 1 }

// First returns the label of the first stage.
func First() string { return labels[0] }

// Index returns the position of label. Unknown or empty labels map to 0.
func Index(label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return 0
}

// Valid reports whether label is one of the known stages.
func Valid(label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// Resolve returns label if it is a known stage, otherwise the first stage.
func Resolve(label string) string {
	if Valid(label) {
		return label
	}
	return labels[0]
}

// Label returns the stage label at idx, clamped to the valid range.
func Label(idx int) string {
	return labels[clamp(idx)]
}

// Lookup matches a label case-insensitively and returns its canonical form.
func Lookup(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, l := range labels {
		if strings.EqualFold(l, s) {
			return l, true
		}
	}
	return "", false
}

// Progress returns how far idx is through the workflow as a whole percentage.
func Progress(idx int) int {
	return int(math.Round(float64(clamp(idx)) / float64(Last()) * 100))
}

// Position renders idx as "Stage N of M".
func Position(idx int) string {
	return fmt.Sprintf("Stage %d of %d", clamp(idx)+1, len(labels))
}

func clamp(idx int) int {
	return min(max(idx, 0), Last())
}
