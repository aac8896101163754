package timeutil

import (
	"fmt"
	"time"
)

const (
	// LayoutDay is the YYYY-MM-DD form used by the adapter's --from/--to
	// flags and by note date prefixes.
	LayoutDay = "2006-01-02"
)

// ParseDay parses a YYYY-MM-DD value into midnight local time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutDay, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseISO parses an ISO-8601 timestamp.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, use ISO-8601", s)
	}
	return t, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay extends t to 23:59:59, making day ranges boundary-inclusive.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// AddDays shifts t by a whole number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// Overlaps reports whether [aStart, aEnd] intersects [bStart, bEnd],
// inclusive at both ends.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Before(bStart) {
		return false
	}
	if bEnd.Before(aStart) {
		return false
	}
	return true
}
