package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is an offer duration decoded from the source's compact
// "PT9H35M" encoding. Raw keeps the original token so callers can fall
// back to it for display when parsing failed.
type Duration struct {
	Hours   int
	Minutes int
	Raw     string
}

// ParseDuration decodes a PTxHyM duration token. Either component may be
// absent. Malformed input yields a zero duration with Raw preserved;
// parsing never fails hard.
func ParseDuration(text string) Duration {
	d := Duration{Raw: text}
	if !strings.HasPrefix(text, "PT") {
		return d
	}
	rest := text[2:]
	if i := strings.Index(rest, "H"); i >= 0 {
		if h, err := strconv.Atoi(rest[:i]); err == nil {
			d.Hours = h
		}
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "M"); i >= 0 {
		if m, err := strconv.Atoi(rest[:i]); err == nil {
			d.Minutes = m
		}
	}
	return d
}

// TotalMinutes returns the duration in minutes.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// Format renders "9h 35m". Empty input renders empty; a token that never
// parsed renders its raw text.
func (d Duration) Format() string {
	if d.Raw == "" {
		return ""
	}
	if !strings.HasPrefix(d.Raw, "PT") {
		return d.Raw
	}
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// ParseTimestamp decodes an ISO-style local timestamp. The ok result is
// false on failure; callers show the raw string instead.
func ParseTimestamp(text string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a source timestamp as "2006-01-02 15:04",
// passing the raw text through when it does not parse.
func FormatTimestamp(text string) string {
	if t, ok := ParseTimestamp(text); ok {
		return t.Format("2006-01-02 15:04")
	}
	return text
}
