// Package calendars implements the adapter's calendar verb and the
// client-side toggle refresh.
package calendars

import (
	"context"

	"tableflip.dev/daybridge/pkg/envelope"
	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/settings"
)

// List fetches every event calendar and reports it on the envelope.
type List struct {
	Store eventkit.Store
	Out   *envelope.Writer
}

func (l *List) Do(ctx context.Context) error {
	if err := l.Store.RequestAccess(ctx, eventkit.ScopeCalendars); err != nil {
		return l.Out.Error(err.Error())
	}
	cals, err := l.Store.Calendars(ctx)
	if err != nil {
		return l.Out.Error(err.Error())
	}
	return l.Out.OK(cals)
}

// Refresh re-fetches the calendar list through the bridge and folds it into
// the saved toggles, preserving existing enabled/disabled choices.
type Refresh struct {
	Source       settings.CalendarSource
	SettingsPath string
	Pretty       *printers.PrettyPrint
}

func (r *Refresh) Do(ctx context.Context) error {
	s, err := settings.Load(r.SettingsPath)
	if err != nil {
		return err
	}
	if err := settings.Refresh(ctx, r.Source, r.SettingsPath, &s); err != nil {
		return err
	}
	enabled := 0
	for _, t := range s.CalendarToggles {
		if t.Enabled {
			enabled++
		}
	}
	r.Pretty.Notice("refreshed %d calendars (%d enabled)", len(s.CalendarToggles), enabled)
	return nil
}
