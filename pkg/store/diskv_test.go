package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

func testStore(t *testing.T) eventkit.Store {
	t.Helper()
	s, err := Load(&StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned %v", err)
	}
	return s
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := timeutil.ParseDay(s)
	if err != nil {
		t.Fatalf("bad fixture %q: %v", s, err)
	}
	return d
}

func TestDefaultsSeeded(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	cals, err := s.Calendars(ctx)
	if err != nil {
		t.Fatalf("Calendars() returned %v", err)
	}
	if len(cals) != 1 || cals[0].ID != DefaultCalendarID {
		t.Errorf("got %+v", cals)
	}

	lists, err := s.ReminderLists(ctx)
	if err != nil {
		t.Fatalf("ReminderLists() returned %v", err)
	}
	if len(lists) != 1 || lists[0].ID != DefaultListID {
		t.Errorf("got %+v", lists)
	}
}

func TestCreateEventRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, eventkit.EventDraft{
		Title:    "Standup",
		Start:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		Location: "Room 4",
	})
	if err != nil {
		t.Fatalf("CreateEvent() returned %v", err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}
	if created.CalendarID != DefaultCalendarID {
		t.Errorf("calendar = %q, want default fallback", created.CalendarID)
	}
	if created.StartDate != "2026-03-02T10:00:00Z" {
		t.Errorf("start = %q", created.StartDate)
	}

	got, err := s.Event(ctx, created.ID)
	if err != nil {
		t.Fatalf("Event() returned %v", err)
	}
	if got != created {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, created)
	}
}

func TestUpdateEventPartial(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, eventkit.EventDraft{
		Title: "Standup",
		Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		Notes: "bring coffee",
	})
	if err != nil {
		t.Fatalf("CreateEvent() returned %v", err)
	}

	title := "Standup (moved)"
	updated, err := s.UpdateEvent(ctx, created.ID, eventkit.EventPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateEvent() returned %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.StartDate != created.StartDate || updated.Notes != created.Notes {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestEventsRangeInclusive(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// Midday event on the 2nd and one spanning midnight into the 3rd.
	if _, err := s.CreateEvent(ctx, eventkit.EventDraft{
		Title: "Midday",
		Start: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateEvent(ctx, eventkit.EventDraft{
		Title: "Crossing",
		Start: time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 3, 0, 15, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}

	both, err := s.Events(ctx,
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("Events() returned %v", err)
	}
	if len(both) != 2 {
		t.Fatalf("day 2: got %d events, want 2", len(both))
	}
	if both[0].Title != "Midday" || both[1].Title != "Crossing" {
		t.Errorf("wrong order: %q, %q", both[0].Title, both[1].Title)
	}

	next, err := s.Events(ctx,
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 23, 59, 59, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("Events() returned %v", err)
	}
	if len(next) != 1 || next[0].Title != "Crossing" {
		t.Errorf("day 3: got %+v", next)
	}

	none, err := s.Events(ctx,
		time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("Events() returned %v", err)
	}
	if len(none) != 0 {
		t.Errorf("day 4: got %+v", none)
	}
}

func TestEventsUnresolvableFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.CreateEvent(ctx, eventkit.EventDraft{
		Title: "Midday",
		Start: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Events(ctx, day(t, "2026-03-01"), timeutil.EndOfDay(day(t, "2026-03-03")),
		[]string{"no-such-calendar"})
	if err != nil {
		t.Fatalf("Events() returned %v", err)
	}
	if len(got) != 0 {
		t.Errorf("filter of unknown ids matched %d events", len(got))
	}
}

func TestDeleteEventMissing(t *testing.T) {
	s := testStore(t)
	err := s.DeleteEvent(context.Background(), "nope")
	if !eventkit.IsNotFound(err) {
		t.Errorf("got %v, want a not-found error", err)
	}
}

func TestRequestAccessDenied(t *testing.T) {
	s, err := Load(&StaticConfig{Path: t.TempDir(), DenyCalendars: true})
	if err != nil {
		t.Fatalf("Load() returned %v", err)
	}
	ctx := context.Background()

	if err := s.RequestAccess(ctx, eventkit.ScopeCalendars); !eventkit.IsPermissionDenied(err) {
		t.Errorf("calendars: got %v, want permission denied", err)
	}
	if err := s.RequestAccess(ctx, eventkit.ScopeReminders); err != nil {
		t.Errorf("reminders: got %v, want granted", err)
	}
}

func TestRemindersLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	due := time.Date(2026, 3, 2, 9, 30, 45, 0, time.UTC)
	created, err := s.CreateReminder(ctx, eventkit.ReminderDraft{
		Title: "File taxes",
		Due:   &due,
	})
	if err != nil {
		t.Fatalf("CreateReminder() returned %v", err)
	}
	if created.ListID != DefaultListID {
		t.Errorf("list = %q, want default fallback", created.ListID)
	}
	if created.DueDate == nil || *created.DueDate != "2026-03-02T09:30:00Z" {
		t.Errorf("due not truncated to the minute: %v", created.DueDate)
	}

	if _, err := s.CreateReminder(ctx, eventkit.ReminderDraft{Title: "Buy milk"}); err != nil {
		t.Fatal(err)
	}

	completed, err := s.CompleteReminder(ctx, created.ID)
	if err != nil {
		t.Fatalf("CompleteReminder() returned %v", err)
	}
	if !completed.IsCompleted {
		t.Error("reminder not marked completed")
	}

	open, err := s.Reminders(ctx, DefaultListID, true)
	if err != nil {
		t.Fatalf("Reminders() returned %v", err)
	}
	if len(open) != 1 || open[0].Title != "Buy milk" {
		t.Errorf("incomplete filter: got %+v", open)
	}

	all, err := s.Reminders(ctx, "", false)
	if err != nil {
		t.Fatalf("Reminders() returned %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all lists: got %d reminders, want 2", len(all))
	}
}

func TestRemindersUnknownList(t *testing.T) {
	s := testStore(t)
	_, err := s.Reminders(context.Background(), "no-such-list", false)
	if !eventkit.IsNotFound(err) {
		t.Errorf("got %v, want a not-found error", err)
	}
}
