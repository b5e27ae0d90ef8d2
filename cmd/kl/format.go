package main

import (
	"fmt"
	"strings"

	"github.com/zulandar/kitlog/internal/stage"
)

// truncate shortens s to at most n runes, marking the cut with "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// shortID returns the first block of a UUID for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return truncate(id, 8)
}

// progressBar renders a fixed-width text bar for the status.
func progressBar(status string, width int) string {
	pct := stage.Progress(stage.Index(status))
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), pct)
}

// orDash returns s, or "-" when s is blank.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
