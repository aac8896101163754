// Package reminders implements the adapter's reminder verbs.
package reminders

import (
	"context"
	"fmt"

	"tableflip.dev/daybridge/pkg/envelope"
	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// Lists fetches every reminder list.
type Lists struct {
	Store eventkit.Store
	Out   *envelope.Writer
}

func (l *Lists) Do(ctx context.Context) error {
	if err := l.Store.RequestAccess(ctx, eventkit.ScopeReminders); err != nil {
		return l.Out.Error(err.Error())
	}
	lists, err := l.Store.ReminderLists(ctx)
	if err != nil {
		return l.Out.Error(err.Error())
	}
	return l.Out.OK(lists)
}

// List fetches reminders, optionally restricted to one list and to
// incomplete items only.
type List struct {
	Store          eventkit.Store
	Out            *envelope.Writer
	ListID         string
	IncompleteOnly bool
}

func (l *List) Do(ctx context.Context) error {
	if err := l.Store.RequestAccess(ctx, eventkit.ScopeReminders); err != nil {
		return l.Out.Error(err.Error())
	}
	reminders, err := l.Store.Reminders(ctx, l.ListID, l.IncompleteOnly)
	if err != nil {
		return l.Out.Error(err.Error())
	}
	return l.Out.OK(reminders)
}

// Get fetches a single reminder by id.
type Get struct {
	Store eventkit.Store
	Out   *envelope.Writer
	ID    string
}

func (g *Get) Do(ctx context.Context) error {
	if err := g.Store.RequestAccess(ctx, eventkit.ScopeReminders); err != nil {
		return g.Out.Error(err.Error())
	}
	r, err := g.Store.Reminder(ctx, g.ID)
	if err != nil {
		return g.Out.Error(err.Error())
	}
	return g.Out.OK(r)
}

// Create makes a new reminder. An empty ListID targets the default list and
// an empty DueDate leaves the reminder without one. Due dates keep minute
// granularity. Priority takes the native values only: 0 none, 1 high,
// 5 medium, 9 low.
type Create struct {
	Store    eventkit.Store
	Out      *envelope.Writer
	Title    string
	ListID   string
	DueDate  string
	Notes    string
	Priority int
}

func (c *Create) Do(ctx context.Context) error {
	if err := c.Store.RequestAccess(ctx, eventkit.ScopeReminders); err != nil {
		return c.Out.Error(err.Error())
	}
	if c.Title == "" {
		return c.Out.Error("title is required")
	}
	switch c.Priority {
	case 0, 1, 5, 9:
	default:
		return c.Out.Error(fmt.Sprintf("invalid priority %d, valid values are 0, 1, 5, 9", c.Priority))
	}
	draft := eventkit.ReminderDraft{
		ListID:   c.ListID,
		Title:    c.Title,
		Notes:    c.Notes,
		Priority: c.Priority,
	}
	if c.DueDate != "" {
		due, err := timeutil.ParseISO(c.DueDate)
		if err != nil {
			return c.Out.Error("invalid due date: " + c.DueDate)
		}
		draft.Due = &due
	}
	r, err := c.Store.CreateReminder(ctx, draft)
	if err != nil {
		return c.Out.Error(err.Error())
	}
	return c.Out.OK(r)
}

// Complete marks a reminder done and returns its updated record.
type Complete struct {
	Store eventkit.Store
	Out   *envelope.Writer
	ID    string
}

func (c *Complete) Do(ctx context.Context) error {
	if err := c.Store.RequestAccess(ctx, eventkit.ScopeReminders); err != nil {
		return c.Out.Error(err.Error())
	}
	r, err := c.Store.CompleteReminder(ctx, c.ID)
	if err != nil {
		return c.Out.Error(err.Error())
	}
	return c.Out.OK(r)
}

// Delete removes a reminder by id. Success data is {"deleted": id}.
type Delete struct {
	Store eventkit.Store
	Out   *envelope.Writer
	ID    string
}

func (d *Delete) Do(ctx context.Context) error {
	if err := d.Store.RequestAccess(ctx, eventkit.ScopeReminders); err != nil {
		return d.Out.Error(err.Error())
	}
	if err := d.Store.DeleteReminder(ctx, d.ID); err != nil {
		return d.Out.Error(err.Error())
	}
	return d.Out.OK(map[string]string{"deleted": d.ID})
}
