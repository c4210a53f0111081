package core

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		hours   int
		minutes int
	}{
		{"PT9H35M", 9, 35},
		{"PT14H", 14, 0},
		{"PT45M", 0, 45},
		{"PT0H0M", 0, 0},
		{"", 0, 0},
		{"9h35m", 0, 0},
		{"PTXHYM", 0, 0},
	}

	for _, tt := range tests {
		d := ParseDuration(tt.in)
		if d.Hours != tt.hours || d.Minutes != tt.minutes {
			t.Errorf("ParseDuration(%q) = %dh %dm, want %dh %dm",
				tt.in, d.Hours, d.Minutes, tt.hours, tt.minutes)
		}
		if d.Raw != tt.in {
			t.Errorf("ParseDuration(%q) lost raw text: %q", tt.in, d.Raw)
		}
	}
}

func TestDurationTotalMinutes(t *testing.T) {
	if got := ParseDuration("PT2H30M").TotalMinutes(); got != 150 {
		t.Errorf("expected 150 minutes, got %d", got)
	}
}

func TestDurationFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT9H35M", "9h 35m"},
		{"PT14H", "14h 0m"},
		{"PT45M", "0h 45m"},
		{"", ""},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		if got := ParseDuration(tt.in).Format(); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("2026-05-06T20:25:00")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if ts.Hour() != 20 || ts.Minute() != 25 {
		t.Errorf("unexpected clock time: %v", ts)
	}

	if _, ok := ParseTimestamp("not-a-time"); ok {
		t.Error("expected parse failure for garbage input")
	}
}

func TestFormatTimestamp_FallsBackToRaw(t *testing.T) {
	if got := FormatTimestamp("???"); got != "???" {
		t.Errorf("expected raw passthrough, got %q", got)
	}
	if got := FormatTimestamp("2026-05-06T20:25:00"); got != "2026-05-06 20:25" {
		t.Errorf("unexpected format: %q", got)
	}
}
