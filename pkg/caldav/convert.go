package caldav

import (
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"tableflip.dev/daybridge/pkg/eventkit"
)

// parsedEvent is a VEVENT lifted out of its calendar object, before
// recurrence expansion.
type parsedEvent struct {
	uid         string
	summary     string
	description string
	location    string
	start       time.Time
	end         time.Time
	allDay      bool
	rawRRule    string
	exDates     []time.Time
}

func parseEventObject(obj *caldav.CalendarObject) (parsedEvent, error) {
	var pe parsedEvent
	if obj.Data == nil {
		return pe, fmt.Errorf("no data in calendar object %s", obj.Path)
	}

	for _, comp := range obj.Data.Children {
		if comp.Name != ical.CompEvent {
			continue
		}
		if prop := comp.Props.Get(ical.PropUID); prop != nil {
			pe.uid = prop.Value
		}
		if prop := comp.Props.Get(ical.PropSummary); prop != nil {
			pe.summary = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDescription); prop != nil {
			pe.description = prop.Value
		}
		if prop := comp.Props.Get(ical.PropLocation); prop != nil {
			pe.location = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				pe.start = t
			}
			if prop.Params.Get(ical.ParamValue) == string(ical.ValueDate) {
				pe.allDay = true
			}
		}
		if prop := comp.Props.Get(ical.PropDateTimeEnd); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				pe.end = t
			}
		}
		if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil {
			pe.rawRRule = prop.Value
		}
		for _, prop := range comp.Props.Values(ical.PropExceptionDates) {
			if t, err := prop.DateTime(time.UTC); err == nil {
				pe.exDates = append(pe.exDates, t)
			}
		}
		break // only the first VEVENT
	}

	if pe.end.IsZero() {
		pe.end = pe.start
	}
	return pe, nil
}

func eventToICS(pe parsedEvent) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//daybridge//caldav//EN")

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, pe.uid)
	vevent.Props.SetText(ical.PropSummary, pe.summary)
	if pe.description != "" {
		vevent.Props.SetText(ical.PropDescription, pe.description)
	}
	if pe.location != "" {
		vevent.Props.SetText(ical.PropLocation, pe.location)
	}
	if pe.allDay {
		vevent.Props.SetDate(ical.PropDateTimeStart, pe.start)
		if !pe.end.IsZero() {
			vevent.Props.SetDate(ical.PropDateTimeEnd, pe.end)
		}
	} else {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, pe.start.UTC())
		if !pe.end.IsZero() {
			vevent.Props.SetDateTime(ical.PropDateTimeEnd, pe.end.UTC())
		}
	}
	if pe.rawRRule != "" {
		vevent.Props.SetText(ical.PropRecurrenceRule, pe.rawRRule)
	}
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	cal.Children = append(cal.Children, vevent.Component)
	return cal
}

// wireEvent maps one occurrence of a parsed event into the adapter's wire
// shape.
func wireEvent(id string, pe parsedEvent, start, end time.Time, cal caldav.Calendar) eventkit.Event {
	return eventkit.Event{
		ID:            id,
		Title:         pe.summary,
		StartDate:     eventkit.FormatISO(start),
		EndDate:       eventkit.FormatISO(end),
		IsAllDay:      pe.allDay,
		Location:      pe.location,
		Notes:         pe.description,
		CalendarID:    cal.Path,
		CalendarTitle: cal.Name,
		CalendarColor: eventkit.PlaceholderColor,
	}
}

// parsedTodo is a VTODO lifted out of its calendar object.
type parsedTodo struct {
	uid         string
	summary     string
	description string
	due         *time.Time
	completed   bool
	priority    int
}

func parseTodoObject(obj *caldav.CalendarObject) (parsedTodo, error) {
	var pt parsedTodo
	if obj.Data == nil {
		return pt, fmt.Errorf("no data in calendar object %s", obj.Path)
	}

	for _, comp := range obj.Data.Children {
		if comp.Name != ical.CompToDo {
			continue
		}
		if prop := comp.Props.Get(ical.PropUID); prop != nil {
			pt.uid = prop.Value
		}
		if prop := comp.Props.Get(ical.PropSummary); prop != nil {
			pt.summary = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDescription); prop != nil {
			pt.description = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDue); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				pt.due = &t
			}
		}
		if prop := comp.Props.Get(ical.PropStatus); prop != nil {
			pt.completed = prop.Value == "COMPLETED"
		}
		if prop := comp.Props.Get(ical.PropPriority); prop != nil {
			if v, err := strconv.Atoi(prop.Value); err == nil {
				pt.priority = v
			}
		}
		break
	}
	return pt, nil
}

func todoToICS(pt parsedTodo) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//daybridge//caldav//EN")

	vtodo := ical.NewComponent(ical.CompToDo)
	vtodo.Props.SetText(ical.PropUID, pt.uid)
	vtodo.Props.SetText(ical.PropSummary, pt.summary)
	if pt.description != "" {
		vtodo.Props.SetText(ical.PropDescription, pt.description)
	}
	if pt.due != nil {
		// Minute granularity, matching the adapter's due-date contract.
		vtodo.Props.SetDateTime(ical.PropDue, pt.due.UTC().Truncate(time.Minute))
	}
	if pt.priority > 0 {
		vtodo.Props.SetText(ical.PropPriority, strconv.Itoa(pt.priority))
	}
	if pt.completed {
		vtodo.Props.SetText(ical.PropStatus, "COMPLETED")
		vtodo.Props.SetText(ical.PropPercentComplete, "100")
	} else {
		vtodo.Props.SetText(ical.PropStatus, "NEEDS-ACTION")
	}
	vtodo.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	cal.Children = append(cal.Children, vtodo)
	return cal
}

func wireReminder(id string, pt parsedTodo, list caldav.Calendar) eventkit.Reminder {
	r := eventkit.Reminder{
		ID:          id,
		Title:       pt.summary,
		Notes:       pt.description,
		IsCompleted: pt.completed,
		Priority:    pt.priority,
		ListID:      list.Path,
		ListTitle:   list.Name,
	}
	if pt.due != nil {
		due := eventkit.FormatISO(pt.due.Truncate(time.Minute))
		r.DueDate = &due
	}
	return r
}

func newUID() string {
	return fmt.Sprintf("%d@daybridge", time.Now().UnixNano())
}
