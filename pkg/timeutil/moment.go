package timeutil

import (
	"strings"
	"time"
)

// momentTokens maps moment.js-style tokens to Go reference layouts, longest
// token first so "YYYY" is not eaten by "YY".
var momentTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// ExpandDateTokens substitutes moment.js-style date tokens in template with
// values from date. Text without tokens passes through untouched, so plain
// folder names like "Calendar" are valid templates.
func ExpandDateTokens(template string, date time.Time) string {
	var b strings.Builder
	rest := template
	for len(rest) > 0 {
		matched := false
		for _, tok := range momentTokens {
			if strings.HasPrefix(rest, tok.token) {
				b.WriteString(date.Format(tok.layout))
				rest = rest[len(tok.token):]
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(rest[0])
			rest = rest[1:]
		}
	}
	return b.String()
}

// FormatDisplayDate renders the agenda header date, e.g. "Saturday, 14 Feb
// 2026".
func FormatDisplayDate(t time.Time) string {
	return t.Format("Monday, 2 Jan 2006")
}

// FormatClock renders an ISO timestamp as HH:MM local time. Malformed input
// comes back empty rather than failing the render.
func FormatClock(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	return t.Local().Format("15:04")
}
