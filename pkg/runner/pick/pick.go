// Package pick lists upcoming events inside a sliding window so one can be
// linked to a note by id.
package pick

import (
	"context"
	"time"

	agendaui "tableflip.dev/daybridge/pkg/agenda"
	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/notes"
	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// Pick prints upcoming events from today through the end of the window.
type Pick struct {
	Source      agendaui.Source
	Notes       *notes.Manager
	Pretty      *printers.PrettyPrint
	Window      string // e.g. "30d", "2w", "48h"
	CalendarIDs []string
}

func (p *Pick) Do(ctx context.Context) error {
	window := p.Window
	if window == "" {
		window = timeutil.DefaultPickWindow
	}
	d, err := timeutil.ParseWindow(window)
	if err != nil {
		return err
	}

	today := timeutil.StartOfDay(time.Now())
	from := today.Format(timeutil.LayoutDay)
	to := today.Add(d).Format(timeutil.LayoutDay)

	events, err := p.Source.Events(ctx, from, to, p.CalendarIDs)
	if err != nil {
		return err
	}
	events = upcoming(events, time.Now())

	linked := map[string]bool{}
	if p.Notes != nil {
		linked = p.Notes.LinkedEventIDs()
	}

	p.Pretty.Day(today)
	p.Pretty.Events(events, linked)
	return nil
}

// upcoming drops events that already ended. The fetch starts at today's
// midnight, so without this the list would open with the morning's leftovers.
func upcoming(events []eventkit.Event, now time.Time) []eventkit.Event {
	kept := make([]eventkit.Event, 0, len(events))
	for _, ev := range events {
		if ev.End().Before(now) {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}
