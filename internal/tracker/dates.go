package tracker

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("tracker: unrecognized date %q", s)
}

// FormatDate renders an optional stored date for display, or an em dash
// when it is absent or unparseable.
func FormatDate(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "—"
	}
	t, err := ParseDate(*s)
	if err != nil {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// FormatTime renders a timestamp the same way, treating the zero time as absent.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}
