package schedule

import (
	"strings"
	"time"
)

// dateLayouts covers the date encodings observed in historical records.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ParseDate resolves a stored date value to an instant. Values without an
// explicit zone are interpreted in local time, matching how the records were
// written.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LooksLikeInstant reports whether the value is plausibly a full ISO instant
// rather than a bare time of day. The heuristic matches the historical data:
// instants carry a 'T' separator or a trailing 'Z'.
func LooksLikeInstant(s string) bool {
	return strings.Contains(s, "T") || strings.HasSuffix(s, "Z")
}

// ParseInstant parses an ISO instant, tolerating the second-less and
// zone-less variants present in older records.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	} {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
