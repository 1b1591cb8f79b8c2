package schedule

import (
	"strconv"
	"strings"
	"time"
)

// ParseTimeOfDay combines a time-of-day string with the calendar day of ref.
// Accepted formats are 24-hour "H:MM"/"HH:MM" and 12-hour "H:MM AM/PM" with
// a case-insensitive suffix. The result keeps ref's location with seconds and
// nanoseconds zeroed. It returns false for an unrecognized string or a zero
// reference date; callers treat that as "no window contributed".
func ParseTimeOfDay(ref time.Time, s string) (time.Time, bool) {
	if ref.IsZero() {
		return time.Time{}, false
	}
	hour, minute, ok := parseClock(s)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, ref.Location()), true
}

// parseClock parses "H:MM" / "HH:MM" with an optional AM/PM suffix into an
// hour and minute. 12 AM maps to hour 0 and 12 PM stays 12.
func parseClock(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	meridiem := ""
	switch {
	case hasSuffixFold(s, "am"):
		meridiem = "am"
		s = strings.TrimSpace(s[:len(s)-2])
	case hasSuffixFold(s, "pm"):
		meridiem = "pm"
		s = strings.TrimSpace(s[:len(s)-2])
	}
	hh, mm, found := strings.Cut(s, ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, 0, false
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour != 12 {
			hour += 12
		}
	}
	return hour, minute, true
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
