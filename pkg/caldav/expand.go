package caldav

import (
	"time"

	"github.com/teambition/rrule-go"

	"tableflip.dev/daybridge/pkg/timeutil"
)

// Safety cap so a malformed RRULE cannot blow up a day query.
const maxOccurrencesPerEvent = 1000

type occurrence struct {
	start time.Time
	end   time.Time
}

// expandOccurrences turns a parsed VEVENT into the concrete occurrences that
// intersect [from, to] inclusive. Non-recurring events yield at most one
// occurrence; RRULE events are expanded with their EXDATEs applied and the
// base duration preserved.
func expandOccurrences(pe parsedEvent, from, to time.Time) []occurrence {
	if pe.rawRRule == "" {
		if !timeutil.Overlaps(pe.start, pe.end, from, to) {
			return nil
		}
		return []occurrence{{start: pe.start, end: pe.end}}
	}

	r, err := rrule.StrToRRule(pe.rawRRule)
	if err != nil {
		// An unparseable rule degrades to the base occurrence.
		if !timeutil.Overlaps(pe.start, pe.end, from, to) {
			return nil
		}
		return []occurrence{{start: pe.start, end: pe.end}}
	}
	r.DTStart(pe.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range pe.exDates {
		set.ExDate(ex.In(pe.start.Location()))
	}

	// Widen the window by the event duration so occurrences that start
	// before the range but overlap it are kept.
	duration := pe.end.Sub(pe.start)
	if duration < 0 {
		duration = 0
	}
	rangeStart := from.Add(-duration).In(pe.start.Location())
	rangeEnd := to.In(pe.start.Location())

	starts := set.Between(rangeStart, rangeEnd, true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	out := make([]occurrence, 0, len(starts))
	for _, start := range starts {
		var end time.Time
		if pe.allDay {
			day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			start = day
			end = day.Add(24 * time.Hour)
		} else {
			end = start.Add(duration)
		}
		if !timeutil.Overlaps(start, end, from, to) {
			continue
		}
		out = append(out, occurrence{start: start, end: end})
	}
	return out
}
