package caldav

import (
	"context"

	"github.com/emersion/go-webdav/caldav"

	"tableflip.dev/daybridge/pkg/eventkit"
)

func (s *Store) listByID(ctx context.Context, id string) (caldav.Calendar, bool, error) {
	cals, err := s.todoCalendars(ctx)
	if err != nil {
		return caldav.Calendar{}, false, err
	}
	for _, cal := range cals {
		if cal.Path == id {
			return cal, true, nil
		}
	}
	return caldav.Calendar{}, false, nil
}

func (s *Store) Reminders(ctx context.Context, listID string, incompleteOnly bool) ([]eventkit.Reminder, error) {
	// An empty list id means every list.
	var lists []caldav.Calendar
	if listID == "" {
		all, err := s.todoCalendars(ctx)
		if err != nil {
			return nil, err
		}
		lists = all
	} else {
		list, ok, err := s.listByID(ctx, listID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &eventkit.NotFoundError{Kind: "Reminder list", ID: listID}
		}
		lists = []caldav.Calendar{list}
	}

	client, err := s.connect()
	if err != nil {
		return nil, err
	}
	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name:  "VCALENDAR",
			Comps: []caldav.CompFilter{{Name: "VTODO"}},
		},
	}

	all := make([]eventkit.Reminder, 0)
	for _, list := range lists {
		objects, err := client.QueryCalendar(ctx, list.Path, query)
		if err != nil {
			return nil, err
		}
		for i := range objects {
			pt, err := parseTodoObject(&objects[i])
			if err != nil {
				continue
			}
			if incompleteOnly && pt.completed {
				continue
			}
			all = append(all, wireReminder(objects[i].Path, pt, list))
		}
	}
	return all, nil
}

func (s *Store) Reminder(ctx context.Context, id string) (eventkit.Reminder, error) {
	client, err := s.connect()
	if err != nil {
		return eventkit.Reminder{}, err
	}
	obj, err := client.GetCalendarObject(ctx, id)
	if err != nil {
		return eventkit.Reminder{}, &eventkit.NotFoundError{Kind: "Reminder", ID: id}
	}
	pt, err := parseTodoObject(obj)
	if err != nil {
		return eventkit.Reminder{}, &eventkit.NotFoundError{Kind: "Reminder", ID: id}
	}
	list, ok, err := s.listByID(ctx, collectionOf(id))
	if err != nil {
		return eventkit.Reminder{}, err
	}
	if !ok {
		list.Path = collectionOf(id)
	}
	return wireReminder(obj.Path, pt, list), nil
}

func (s *Store) CreateReminder(ctx context.Context, draft eventkit.ReminderDraft) (eventkit.Reminder, error) {
	list, ok, err := s.listByID(ctx, draft.ListID)
	if err != nil {
		return eventkit.Reminder{}, err
	}
	if !ok {
		// Fall back to the first list, the server-side default.
		lists, err := s.todoCalendars(ctx)
		if err != nil {
			return eventkit.Reminder{}, err
		}
		if len(lists) == 0 {
			return eventkit.Reminder{}, &eventkit.NotFoundError{Kind: "Reminder list", ID: draft.ListID}
		}
		list = lists[0]
	}

	pt := parsedTodo{
		uid:         newUID(),
		summary:     draft.Title,
		description: draft.Notes,
		due:         draft.Due,
		priority:    draft.Priority,
	}

	client, err := s.connect()
	if err != nil {
		return eventkit.Reminder{}, err
	}
	path := objectPath(list.Path, pt.uid)
	if _, err := client.PutCalendarObject(ctx, path, todoToICS(pt)); err != nil {
		return eventkit.Reminder{}, err
	}
	return wireReminder(path, pt, list), nil
}

func (s *Store) CompleteReminder(ctx context.Context, id string) (eventkit.Reminder, error) {
	client, err := s.connect()
	if err != nil {
		return eventkit.Reminder{}, err
	}
	obj, err := client.GetCalendarObject(ctx, id)
	if err != nil {
		return eventkit.Reminder{}, &eventkit.NotFoundError{Kind: "Reminder", ID: id}
	}
	pt, err := parseTodoObject(obj)
	if err != nil {
		return eventkit.Reminder{}, &eventkit.NotFoundError{Kind: "Reminder", ID: id}
	}
	pt.completed = true
	if _, err := client.PutCalendarObject(ctx, id, todoToICS(pt)); err != nil {
		return eventkit.Reminder{}, err
	}
	list, ok, err := s.listByID(ctx, collectionOf(id))
	if err != nil {
		return eventkit.Reminder{}, err
	}
	if !ok {
		list.Path = collectionOf(id)
	}
	return wireReminder(id, pt, list), nil
}

func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	client, err := s.connect()
	if err != nil {
		return err
	}
	if _, err := client.GetCalendarObject(ctx, id); err != nil {
		return &eventkit.NotFoundError{Kind: "Reminder", ID: id}
	}
	return client.RemoveAll(ctx, id)
}
