package eventkit

import (
	"context"
	"time"
)

// Store is the calendar/reminders backend behind the adapter verbs. Every
// entry point requests the relevant scope first; implementations return a
// PermissionError when it is denied.
type Store interface {
	RequestAccess(ctx context.Context, scope Scope) error

	Calendars(ctx context.Context) ([]Calendar, error)
	Events(ctx context.Context, from, to time.Time, calendarIDs []string) ([]Event, error)
	Event(ctx context.Context, id string) (Event, error)
	CreateEvent(ctx context.Context, draft EventDraft) (Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ReminderLists(ctx context.Context) ([]ReminderList, error)
	Reminders(ctx context.Context, listID string, incompleteOnly bool) ([]Reminder, error)
	Reminder(ctx context.Context, id string) (Reminder, error)
	CreateReminder(ctx context.Context, draft ReminderDraft) (Reminder, error)
	CompleteReminder(ctx context.Context, id string) (Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
}
