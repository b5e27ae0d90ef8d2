package tracker

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	valid := []string{
		"2024-02-10",
		"2024-02-10T08:30:00Z",
		"2024-02-10T08:30:00.123Z",
		"2024-02-10T08:30:00",
		" 2024-02-10 ",
	}
	for _, s := range valid {
		got, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", s, err)
			continue
		}
		if got.Year() != 2024 || got.Month() != time.February || got.Day() != 10 {
			t.Errorf("ParseDate(%q) = %v", s, got)
		}
	}
	for _, s := range []string{"", "tomorrow", "2024-13-01", "10/02/2024"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", s)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   *string
		want string
	}{
		{nil, "—"},
		{strPtr(""), "—"},
		{strPtr("garbage"), "—"},
		{strPtr("2024-02-10"), "Feb 10, 2024"},
		{strPtr("2023-11-02T00:00:00Z"), "Nov 2, 2023"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(time.Time{}); got != "—" {
		t.Errorf("FormatTime(zero) = %q", got)
	}
	if got := FormatTime(t0); got != "Mar 1, 2024" {
		t.Errorf("FormatTime = %q, want %q", got, "Mar 1, 2024")
	}
}
