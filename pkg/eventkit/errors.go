package eventkit

import (
	"errors"
	"fmt"
)

// Scope names an access grant the store must hold before touching data.
type Scope string

const (
	ScopeCalendars Scope = "calendars"
	ScopeReminders Scope = "reminders"
)

// PermissionError reports a denied access scope. The message is surfaced
// verbatim in the error envelope, so it tells the user how to fix it.
type PermissionError struct {
	Scope Scope
}

func (e *PermissionError) Error() string {
	switch e.Scope {
	case ScopeReminders:
		return "Reminders access denied. Grant it with access.reminders in the daybridge config."
	default:
		return "Calendar access denied. Grant it with access.calendars in the daybridge config."
	}
}

// NotFoundError reports an id that did not resolve in the store.
type NotFoundError struct {
	Kind string // "Event", "Reminder", "Reminder list"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPermissionDenied reports whether err wraps a PermissionError.
func IsPermissionDenied(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
