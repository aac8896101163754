package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// PrettyPrint renders human-facing agenda output. The adapter verbs never
// use it; their only output is the JSON envelope.
type PrettyPrint struct {
	ShowIDs bool
}

// Day prints the agenda header for a date.
func (pp *PrettyPrint) Day(date time.Time) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(timeutil.FormatDisplayDate(date))
}

// Events prints an event table, ascending by start time, with a linked
// marker for events that already have a note.
func (pp *PrettyPrint) Events(events []eventkit.Event, linked map[string]bool) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" no events\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	if pp.ShowIDs {
		table.AddRow("", "TIME", "TITLE", "CALENDAR", "ID")
	} else {
		table.AddRow("", "TIME", "TITLE", "CALENDAR")
	}
	for _, ev := range events {
		mark := " "
		if linked[ev.ID] {
			mark = "*"
		}
		if pp.ShowIDs {
			table.AddRow(mark, timeRange(ev), ev.Title, ev.CalendarTitle, ev.ID)
		} else {
			table.AddRow(mark, timeRange(ev), ev.Title, ev.CalendarTitle)
		}
	}
	fmt.Println(table)
	fmt.Println("")
}

// Reminders prints a reminder table.
func (pp *PrettyPrint) Reminders(reminders []eventkit.Reminder) {
	if len(reminders) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" no reminders\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	if pp.ShowIDs {
		table.AddRow("", "TITLE", "DUE", "ID")
	} else {
		table.AddRow("", "TITLE", "DUE")
	}
	for _, r := range reminders {
		mark := " "
		if r.IsCompleted {
			mark = "x"
		}
		due := ""
		if t, ok := r.Due(); ok {
			due = t.Local().Format("2006-01-02 15:04")
		}
		if pp.ShowIDs {
			table.AddRow(mark, r.Title, due, r.ID)
		} else {
			table.AddRow(mark, r.Title, due)
		}
	}
	fmt.Println(table)
	fmt.Println("")
}

// Notice prints a one-line confirmation, e.g. after refreshing calendars.
func (pp *PrettyPrint) Notice(format string, args ...interface{}) {
	c := color.New(color.Faint)
	_, _ = c.Printf(format+"\n", args...)
}

func timeRange(ev eventkit.Event) string {
	if ev.IsAllDay {
		return "All day"
	}
	return fmt.Sprintf("%s - %s", timeutil.FormatClock(ev.StartDate), timeutil.FormatClock(ev.EndDate))
}
