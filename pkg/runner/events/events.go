// Package events implements the adapter's event verbs. Every verb reports
// through the JSON envelope; errors never escape to the exit code.
package events

import (
	"context"

	"tableflip.dev/daybridge/pkg/envelope"
	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// List fetches events overlapping the inclusive [From, To] day range,
// optionally filtered to a set of calendar ids.
type List struct {
	Store       eventkit.Store
	Out         *envelope.Writer
	From        string
	To          string
	CalendarIDs []string
}

func (l *List) Do(ctx context.Context) error {
	if err := l.Store.RequestAccess(ctx, eventkit.ScopeCalendars); err != nil {
		return l.Out.Error(err.Error())
	}
	from, err := timeutil.ParseDay(l.From)
	if err != nil {
		return l.Out.Error(err.Error())
	}
	to, err := timeutil.ParseDay(l.To)
	if err != nil {
		return l.Out.Error(err.Error())
	}
	events, err := l.Store.Events(ctx, timeutil.StartOfDay(from), timeutil.EndOfDay(to), l.CalendarIDs)
	if err != nil {
		return l.Out.Error(err.Error())
	}
	return l.Out.OK(events)
}

// Get fetches a single event by id.
type Get struct {
	Store eventkit.Store
	Out   *envelope.Writer
	ID    string
}

func (g *Get) Do(ctx context.Context) error {
	if err := g.Store.RequestAccess(ctx, eventkit.ScopeCalendars); err != nil {
		return g.Out.Error(err.Error())
	}
	ev, err := g.Store.Event(ctx, g.ID)
	if err != nil {
		return g.Out.Error(err.Error())
	}
	return g.Out.OK(ev)
}

// Create makes a new event. An empty CalendarID targets the default
// calendar.
type Create struct {
	Store      eventkit.Store
	Out        *envelope.Writer
	Title      string
	StartDate  string
	EndDate    string
	IsAllDay   bool
	Location   string
	Notes      string
	CalendarID string
}

func (c *Create) Do(ctx context.Context) error {
	if err := c.Store.RequestAccess(ctx, eventkit.ScopeCalendars); err != nil {
		return c.Out.Error(err.Error())
	}
	if c.Title == "" {
		return c.Out.Error("title is required")
	}
	start, err := timeutil.ParseISO(c.StartDate)
	if err != nil {
		return c.Out.Error("invalid start date: " + c.StartDate)
	}
	end, err := timeutil.ParseISO(c.EndDate)
	if err != nil {
		return c.Out.Error("invalid end date: " + c.EndDate)
	}
	ev, err := c.Store.CreateEvent(ctx, eventkit.EventDraft{
		CalendarID: c.CalendarID,
		Title:      c.Title,
		Start:      start,
		End:        end,
		Location:   c.Location,
		Notes:      c.Notes,
		AllDay:     c.IsAllDay,
	})
	if err != nil {
		return c.Out.Error(err.Error())
	}
	return c.Out.OK(ev)
}

// Update applies a partial change to an event. Unset fields keep their
// stored values.
type Update struct {
	Store     eventkit.Store
	Out       *envelope.Writer
	ID        string
	Title     *string
	StartDate *string
	EndDate   *string
	Location  *string
	Notes     *string
}

func (u *Update) Do(ctx context.Context) error {
	if err := u.Store.RequestAccess(ctx, eventkit.ScopeCalendars); err != nil {
		return u.Out.Error(err.Error())
	}
	patch := eventkit.EventPatch{
		Title:    u.Title,
		Location: u.Location,
		Notes:    u.Notes,
	}
	if u.StartDate != nil {
		start, err := timeutil.ParseISO(*u.StartDate)
		if err != nil {
			return u.Out.Error("invalid start date: " + *u.StartDate)
		}
		patch.Start = &start
	}
	if u.EndDate != nil {
		end, err := timeutil.ParseISO(*u.EndDate)
		if err != nil {
			return u.Out.Error("invalid end date: " + *u.EndDate)
		}
		patch.End = &end
	}
	ev, err := u.Store.UpdateEvent(ctx, u.ID, patch)
	if err != nil {
		return u.Out.Error(err.Error())
	}
	return u.Out.OK(ev)
}

// Delete removes an event by id. Success data is {"deleted": id}.
type Delete struct {
	Store eventkit.Store
	Out   *envelope.Writer
	ID    string
}

func (d *Delete) Do(ctx context.Context) error {
	if err := d.Store.RequestAccess(ctx, eventkit.ScopeCalendars); err != nil {
		return d.Out.Error(err.Error())
	}
	if err := d.Store.DeleteEvent(ctx, d.ID); err != nil {
		return d.Out.Error(err.Error())
	}
	return d.Out.OK(map[string]string{"deleted": d.ID})
}
