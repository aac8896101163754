package eventkit

import "time"

// Wire-shaped records for the adapter's JSON envelope. Dates travel as
// ISO-8601 strings so a create/get round trip is byte-for-byte stable.

type Calendar struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Color  string `json:"color"`
	Source string `json:"source"`
}

type Event struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	IsAllDay      bool   `json:"isAllDay"`
	Location      string `json:"location"`
	Notes         string `json:"notes"`
	CalendarID    string `json:"calendarId"`
	CalendarTitle string `json:"calendarTitle"`
	CalendarColor string `json:"calendarColor"`
}

type ReminderList struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type Reminder struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Notes       string  `json:"notes"`
	DueDate     *string `json:"dueDate"`
	IsCompleted bool    `json:"isCompleted"`
	Priority    int     `json:"priority"`
	ListID      string  `json:"listId"`
	ListTitle   string  `json:"listTitle"`
}

// Start returns the parsed start timestamp, or the zero time when the wire
// value is malformed.
func (e Event) Start() time.Time {
	t, _ := time.Parse(time.RFC3339, e.StartDate)
	return t
}

// End returns the parsed end timestamp, or the zero time when the wire value
// is malformed.
func (e Event) End() time.Time {
	t, _ := time.Parse(time.RFC3339, e.EndDate)
	return t
}

// Due returns the parsed due timestamp and whether one is set.
func (r Reminder) Due() (time.Time, bool) {
	if r.DueDate == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *r.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISO renders a timestamp the way the adapter emits all event dates.
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// EventDraft carries the fields for a new event.
type EventDraft struct {
	CalendarID string
	Title      string
	Start      time.Time
	End        time.Time
	Location   string
	Notes      string
	AllDay     bool
}

// EventPatch carries a partial update; nil fields are left unchanged.
type EventPatch struct {
	Title    *string
	Start    *time.Time
	End      *time.Time
	Location *string
	Notes    *string
}

// ReminderDraft carries the fields for a new reminder. A nil Due leaves the
// reminder without a due date.
type ReminderDraft struct {
	ListID   string
	Title    string
	Due      *time.Time
	Notes    string
	Priority int
}
