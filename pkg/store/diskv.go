package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// Record kinds, also the first path segment of every diskv key.
const (
	kindCalendar = "calendars"
	kindEvent    = "events"
	kindList     = "lists"
	kindReminder = "reminders"
)

// Identifiers of the records seeded into an empty store so create-event and
// create-reminder always have a default target.
const (
	DefaultCalendarID = "local-personal"
	DefaultListID     = "local-reminders"
)

// Load opens the local diskv-backed store using the provided config. A nil
// config falls back to LoadConfig.
func Load(cfg Config) (eventkit.Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	p := &local{
		d: diskv.New(diskv.Options{
			BasePath:          cfg.BasePath(),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		cfg: cfg,
	}
	if err := p.ensureDefaults(); err != nil {
		return nil, err
	}
	return p, nil
}

type local struct {
	d   *diskv.Diskv
	cfg Config
}

func (p *local) RequestAccess(ctx context.Context, scope eventkit.Scope) error {
	if !p.cfg.Granted(scope) {
		return &eventkit.PermissionError{Scope: scope}
	}
	return nil
}

// ensureDefaults seeds the default calendar and reminder list on first use.
func (p *local) ensureDefaults() error {
	if !p.d.Has(key(kindCalendar, DefaultCalendarID)) {
		cal := eventkit.Calendar{
			ID:     DefaultCalendarID,
			Title:  "Personal",
			Color:  "#1badf8",
			Source: "Local",
		}
		if err := p.write(kindCalendar, cal.ID, cal); err != nil {
			return err
		}
	}
	if !p.d.Has(key(kindList, DefaultListID)) {
		list := eventkit.ReminderList{
			ID:    DefaultListID,
			Title: "Reminders",
			Color: "#ff9500",
		}
		if err := p.write(kindList, list.ID, list); err != nil {
			return err
		}
	}
	return nil
}

// Calendars

func (p *local) Calendars(ctx context.Context) ([]eventkit.Calendar, error) {
	all := make([]eventkit.Calendar, 0)
	for k := range p.d.KeysPrefix(kindCalendar+"/", ctx.Done()) {
		var cal eventkit.Calendar
		if err := p.read(k, &cal); err != nil {
			continue
		}
		cal.Color = eventkit.NormalizeHex(cal.Color)
		all = append(all, cal)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all, nil
}

func (p *local) calendar(id string) (eventkit.Calendar, bool) {
	var cal eventkit.Calendar
	if err := p.read(key(kindCalendar, id), &cal); err != nil {
		return eventkit.Calendar{}, false
	}
	cal.Color = eventkit.NormalizeHex(cal.Color)
	return cal, true
}

// Events

func (p *local) Events(ctx context.Context, from, to time.Time, calendarIDs []string) ([]eventkit.Event, error) {
	// Unresolvable filter ids are dropped; a filter that resolves to
	// nothing matches nothing.
	filtered := len(calendarIDs) > 0
	resolved := make(map[string]bool, len(calendarIDs))
	for _, id := range calendarIDs {
		if _, ok := p.calendar(id); ok {
			resolved[id] = true
		}
	}

	all := make([]eventkit.Event, 0)
	for k := range p.d.KeysPrefix(kindEvent+"/", ctx.Done()) {
		var ev eventkit.Event
		if err := p.read(k, &ev); err != nil {
			continue
		}
		if filtered && !resolved[ev.CalendarID] {
			continue
		}
		if !timeutil.Overlaps(ev.Start(), ev.End(), from, to) {
			continue
		}
		all = append(all, ev)
	}
	sortEvents(all)
	return all, nil
}

func (p *local) Event(ctx context.Context, id string) (eventkit.Event, error) {
	var ev eventkit.Event
	if err := p.read(key(kindEvent, id), &ev); err != nil {
		return eventkit.Event{}, &eventkit.NotFoundError{Kind: "Event", ID: id}
	}
	return ev, nil
}

func (p *local) CreateEvent(ctx context.Context, draft eventkit.EventDraft) (eventkit.Event, error) {
	cal, ok := p.calendar(draft.CalendarID)
	if !ok {
		// Fall back to the default calendar when the id does not resolve.
		cal, ok = p.calendar(DefaultCalendarID)
		if !ok {
			return eventkit.Event{}, &eventkit.NotFoundError{Kind: "Calendar", ID: draft.CalendarID}
		}
	}

	ev := eventkit.Event{
		ID:            newID(draft.Title),
		Title:         draft.Title,
		StartDate:     eventkit.FormatISO(draft.Start),
		EndDate:       eventkit.FormatISO(draft.End),
		IsAllDay:      draft.AllDay,
		Location:      draft.Location,
		Notes:         draft.Notes,
		CalendarID:    cal.ID,
		CalendarTitle: cal.Title,
		CalendarColor: cal.Color,
	}
	if err := p.write(kindEvent, ev.ID, ev); err != nil {
		return eventkit.Event{}, err
	}
	return ev, nil
}

func (p *local) UpdateEvent(ctx context.Context, id string, patch eventkit.EventPatch) (eventkit.Event, error) {
	ev, err := p.Event(ctx, id)
	if err != nil {
		return eventkit.Event{}, err
	}
	if patch.Title != nil {
		ev.Title = *patch.Title
	}
	if patch.Start != nil {
		ev.StartDate = eventkit.FormatISO(*patch.Start)
	}
	if patch.End != nil {
		ev.EndDate = eventkit.FormatISO(*patch.End)
	}
	if patch.Location != nil {
		ev.Location = *patch.Location
	}
	if patch.Notes != nil {
		ev.Notes = *patch.Notes
	}
	if err := p.write(kindEvent, ev.ID, ev); err != nil {
		return eventkit.Event{}, err
	}
	return ev, nil
}

func (p *local) DeleteEvent(ctx context.Context, id string) error {
	if _, err := p.Event(ctx, id); err != nil {
		return err
	}
	return p.d.Erase(key(kindEvent, id))
}

// Reminder lists

func (p *local) ReminderLists(ctx context.Context) ([]eventkit.ReminderList, error) {
	all := make([]eventkit.ReminderList, 0)
	for k := range p.d.KeysPrefix(kindList+"/", ctx.Done()) {
		var list eventkit.ReminderList
		if err := p.read(k, &list); err != nil {
			continue
		}
		list.Color = eventkit.NormalizeHex(list.Color)
		all = append(all, list)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all, nil
}

func (p *local) reminderList(id string) (eventkit.ReminderList, bool) {
	var list eventkit.ReminderList
	if err := p.read(key(kindList, id), &list); err != nil {
		return eventkit.ReminderList{}, false
	}
	list.Color = eventkit.NormalizeHex(list.Color)
	return list, true
}

// Reminders; the list fetch lives in reminders.go with the callback
// adaptation.

func (p *local) Reminder(ctx context.Context, id string) (eventkit.Reminder, error) {
	var r eventkit.Reminder
	if err := p.read(key(kindReminder, id), &r); err != nil {
		return eventkit.Reminder{}, &eventkit.NotFoundError{Kind: "Reminder", ID: id}
	}
	return r, nil
}

func (p *local) CreateReminder(ctx context.Context, draft eventkit.ReminderDraft) (eventkit.Reminder, error) {
	list, ok := p.reminderList(draft.ListID)
	if !ok {
		list, ok = p.reminderList(DefaultListID)
		if !ok {
			return eventkit.Reminder{}, &eventkit.NotFoundError{Kind: "Reminder list", ID: draft.ListID}
		}
	}

	r := eventkit.Reminder{
		ID:        newID(draft.Title),
		Title:     draft.Title,
		Notes:     draft.Notes,
		Priority:  draft.Priority,
		ListID:    list.ID,
		ListTitle: list.Title,
	}
	if draft.Due != nil {
		// Due dates carry calendar-component granularity: minutes, no
		// seconds.
		due := eventkit.FormatISO(draft.Due.Truncate(time.Minute))
		r.DueDate = &due
	}
	if err := p.write(kindReminder, r.ID, r); err != nil {
		return eventkit.Reminder{}, err
	}
	return r, nil
}

func (p *local) CompleteReminder(ctx context.Context, id string) (eventkit.Reminder, error) {
	r, err := p.Reminder(ctx, id)
	if err != nil {
		return eventkit.Reminder{}, err
	}
	r.IsCompleted = true
	if err := p.write(kindReminder, r.ID, r); err != nil {
		return eventkit.Reminder{}, err
	}
	return r, nil
}

func (p *local) DeleteReminder(ctx context.Context, id string) error {
	if _, err := p.Reminder(ctx, id); err != nil {
		return err
	}
	return p.d.Erase(key(kindReminder, id))
}

// Helpers

func (p *local) read(k string, target interface{}) error {
	val, err := p.d.Read(k)
	if err != nil {
		return err
	}
	return json.Unmarshal(val, target)
}

func (p *local) write(kind, id string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return p.d.Write(key(kind, id), data)
}

func sortEvents(events []eventkit.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		li, ri := events[i].Start(), events[j].Start()
		if li.Equal(ri) {
			return events[i].ID < events[j].ID
		}
		return li.Before(ri)
	})
}

func key(kind, id string) string {
	return kind + "/" + id
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(pathKey.Path, pathKey.FileName), "/")
}

// newID mints a store identifier in the shape of the native store's opaque
// ids.
func newID(seed string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%d", seed, time.Now().UnixNano())))
	return strings.ToUpper(fmt.Sprintf("%x", sum[:]))
}
