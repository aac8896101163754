// Package agenda prints a one-shot day agenda through the bridge, the
// non-interactive twin of the full-screen view.
package agenda

import (
	"context"
	"time"

	agendaui "tableflip.dev/daybridge/pkg/agenda"
	"tableflip.dev/daybridge/pkg/notes"
	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// Print fetches and renders the agenda for a single day.
type Print struct {
	Source      agendaui.Source
	Notes       *notes.Manager
	Pretty      *printers.PrettyPrint
	Date        string // YYYY-MM-DD, empty means today
	CalendarIDs []string
}

func (p *Print) Do(ctx context.Context) error {
	day := timeutil.StartOfDay(time.Now())
	if p.Date != "" {
		parsed, err := timeutil.ParseDay(p.Date)
		if err != nil {
			return err
		}
		day = parsed
	}

	dateStr := day.Format(timeutil.LayoutDay)
	events, err := p.Source.Events(ctx, dateStr, dateStr, p.CalendarIDs)
	if err != nil {
		return err
	}

	linked := map[string]bool{}
	if p.Notes != nil {
		linked = p.Notes.LinkedEventIDs()
	}

	p.Pretty.Day(day)
	p.Pretty.Events(events, linked)
	return nil
}
