package caldav

import (
	"context"
	"sort"
	"time"

	"github.com/emersion/go-webdav/caldav"

	"tableflip.dev/daybridge/pkg/eventkit"
)

func (s *Store) Events(ctx context.Context, from, to time.Time, calendarIDs []string) ([]eventkit.Event, error) {
	cals, err := s.eventCalendars(ctx)
	if err != nil {
		return nil, err
	}

	// Unresolvable filter ids are dropped; a filter that resolves to
	// nothing matches nothing.
	if len(calendarIDs) > 0 {
		wanted := make(map[string]bool, len(calendarIDs))
		for _, id := range calendarIDs {
			wanted[id] = true
		}
		filtered := make([]caldav.Calendar, 0, len(cals))
		for _, cal := range cals {
			if wanted[cal.Path] {
				filtered = append(filtered, cal)
			}
		}
		cals = filtered
	}

	client, err := s.connect()
	if err != nil {
		return nil, err
	}

	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{{
				Name:  "VEVENT",
				Start: from,
				End:   to,
			}},
		},
	}

	all := make([]eventkit.Event, 0)
	for _, cal := range cals {
		objects, err := client.QueryCalendar(ctx, cal.Path, query)
		if err != nil {
			return nil, err
		}
		for i := range objects {
			pe, err := parseEventObject(&objects[i])
			if err != nil {
				continue // skip invalid objects
			}
			for _, occ := range expandOccurrences(pe, from, to) {
				all = append(all, wireEvent(objects[i].Path, pe, occ.start, occ.end, cal))
			}
		}
	}
	sortWireEvents(all)
	return all, nil
}

func (s *Store) Event(ctx context.Context, id string) (eventkit.Event, error) {
	client, err := s.connect()
	if err != nil {
		return eventkit.Event{}, err
	}
	obj, err := client.GetCalendarObject(ctx, id)
	if err != nil {
		return eventkit.Event{}, &eventkit.NotFoundError{Kind: "Event", ID: id}
	}
	pe, err := parseEventObject(obj)
	if err != nil {
		return eventkit.Event{}, &eventkit.NotFoundError{Kind: "Event", ID: id}
	}
	cal, ok, err := s.calendarByID(ctx, collectionOf(id))
	if err != nil {
		return eventkit.Event{}, err
	}
	if !ok {
		cal.Path = collectionOf(id)
	}
	return wireEvent(obj.Path, pe, pe.start, pe.end, cal), nil
}

func (s *Store) CreateEvent(ctx context.Context, draft eventkit.EventDraft) (eventkit.Event, error) {
	cal, ok, err := s.calendarByID(ctx, draft.CalendarID)
	if err != nil {
		return eventkit.Event{}, err
	}
	if !ok {
		// Fall back to the first event calendar, the server-side default.
		cals, err := s.eventCalendars(ctx)
		if err != nil {
			return eventkit.Event{}, err
		}
		if len(cals) == 0 {
			return eventkit.Event{}, &eventkit.NotFoundError{Kind: "Calendar", ID: draft.CalendarID}
		}
		cal = cals[0]
	}

	pe := parsedEvent{
		uid:         newUID(),
		summary:     draft.Title,
		description: draft.Notes,
		location:    draft.Location,
		start:       draft.Start,
		end:         draft.End,
		allDay:      draft.AllDay,
	}

	client, err := s.connect()
	if err != nil {
		return eventkit.Event{}, err
	}
	path := objectPath(cal.Path, pe.uid)
	if _, err := client.PutCalendarObject(ctx, path, eventToICS(pe)); err != nil {
		return eventkit.Event{}, err
	}
	return wireEvent(path, pe, pe.start, pe.end, cal), nil
}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch eventkit.EventPatch) (eventkit.Event, error) {
	client, err := s.connect()
	if err != nil {
		return eventkit.Event{}, err
	}
	obj, err := client.GetCalendarObject(ctx, id)
	if err != nil {
		return eventkit.Event{}, &eventkit.NotFoundError{Kind: "Event", ID: id}
	}
	pe, err := parseEventObject(obj)
	if err != nil {
		return eventkit.Event{}, &eventkit.NotFoundError{Kind: "Event", ID: id}
	}

	if patch.Title != nil {
		pe.summary = *patch.Title
	}
	if patch.Start != nil {
		pe.start = *patch.Start
	}
	if patch.End != nil {
		pe.end = *patch.End
	}
	if patch.Location != nil {
		pe.location = *patch.Location
	}
	if patch.Notes != nil {
		pe.description = *patch.Notes
	}

	if _, err := client.PutCalendarObject(ctx, id, eventToICS(pe)); err != nil {
		return eventkit.Event{}, err
	}
	cal, ok, err := s.calendarByID(ctx, collectionOf(id))
	if err != nil {
		return eventkit.Event{}, err
	}
	if !ok {
		cal.Path = collectionOf(id)
	}
	return wireEvent(id, pe, pe.start, pe.end, cal), nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	client, err := s.connect()
	if err != nil {
		return err
	}
	if _, err := client.GetCalendarObject(ctx, id); err != nil {
		return &eventkit.NotFoundError{Kind: "Event", ID: id}
	}
	return client.RemoveAll(ctx, id)
}

func sortWireEvents(events []eventkit.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start().Before(events[j].Start())
	})
}
