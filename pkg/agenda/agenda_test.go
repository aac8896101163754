package agenda

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

type fakeSource struct {
	events []eventkit.Event
	err    error
	calls  int
	lastTo string
}

func (f *fakeSource) Events(ctx context.Context, from, to string, calendarIDs []string) ([]eventkit.Event, error) {
	f.calls++
	f.lastTo = to
	return f.events, f.err
}

type fakeNotes struct {
	linked map[string]bool
	opened string
}

func (f *fakeNotes) LinkedEventIDs() map[string]bool {
	return f.linked
}

func (f *fakeNotes) CreateOrOpenEventNote(ev eventkit.Event) (string, bool, error) {
	f.opened = ev.ID
	return "2026-03-02 - " + ev.Title + ".md", true, nil
}

func fetch(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.loadEvents()
	next, _ := m.Update(cmd())
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewShowsEvents(t *testing.T) {
	src := &fakeSource{events: []eventkit.Event{
		{ID: "EV1", Title: "Standup", StartDate: "2026-03-02T10:00:00Z", EndDate: "2026-03-02T10:30:00Z", CalendarColor: "#1badf8"},
		{ID: "EV2", Title: "All hands", IsAllDay: true},
	}}
	notes := &fakeNotes{linked: map[string]bool{"EV1": true}}

	m := fetch(t, New(src, notes, nil))
	view := m.View()

	if !strings.Contains(view, "Standup") || !strings.Contains(view, "All hands") {
		t.Errorf("events missing from view:\n%s", view)
	}
	if !strings.Contains(view, "All day") {
		t.Errorf("all-day marker missing:\n%s", view)
	}
}

func TestViewEmptyAndError(t *testing.T) {
	m := fetch(t, New(&fakeSource{}, nil, nil))
	if !strings.Contains(m.View(), "no events") {
		t.Errorf("empty state missing:\n%s", m.View())
	}

	m = fetch(t, New(&fakeSource{err: errors.New("daybridge call timed out after 10s")}, nil, nil))
	if !strings.Contains(m.View(), "timed out") {
		t.Errorf("error state missing:\n%s", m.View())
	}
}

func TestDayNavigation(t *testing.T) {
	src := &fakeSource{}
	m := fetch(t, New(src, nil, nil))
	today := timeutil.StartOfDay(time.Now())

	next, cmd := m.Update(key("l"))
	m = next.(Model)
	if !m.current.Equal(timeutil.AddDays(today, 1)) {
		t.Errorf("current = %v after next-day", m.current)
	}
	if cmd == nil {
		t.Error("navigation did not trigger a fetch")
	}

	next, _ = m.Update(key("h"))
	next, _ = next.(Model).Update(key("h"))
	m = next.(Model)
	if !m.current.Equal(timeutil.AddDays(today, -1)) {
		t.Errorf("current = %v after two prev-days", m.current)
	}

	next, _ = m.Update(key("t"))
	m = next.(Model)
	if !m.current.Equal(today) {
		t.Errorf("current = %v after today", m.current)
	}
}

func TestGotoDate(t *testing.T) {
	src := &fakeSource{}
	m := fetch(t, New(src, nil, nil))

	next, _ := m.Update(key("g"))
	m = next.(Model)
	if !m.picking {
		t.Fatal("g did not open the date picker")
	}

	m.dateInput.SetValue("2026-03-07")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.picking {
		t.Error("picker still open after enter")
	}
	want, _ := timeutil.ParseDay("2026-03-07")
	if !m.current.Equal(want) {
		t.Errorf("current = %v, want %v", m.current, want)
	}
	if cmd == nil {
		t.Error("date jump did not trigger a fetch")
	}

	// The fetch asks for exactly that day.
	if msg := cmd(); msg != nil {
		if _, ok := msg.(eventsMsg); !ok {
			t.Errorf("unexpected msg %T", msg)
		}
	}
	if src.lastTo != "2026-03-07" {
		t.Errorf("fetched %q, want 2026-03-07", src.lastTo)
	}
}

func TestEnterOpensNote(t *testing.T) {
	src := &fakeSource{events: []eventkit.Event{
		{ID: "EV1", Title: "Standup", StartDate: "2026-03-02T10:00:00Z", EndDate: "2026-03-02T10:30:00Z"},
	}}
	notes := &fakeNotes{linked: map[string]bool{}}

	m := fetch(t, New(src, notes, nil))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter did not produce a command")
	}
	msg := cmd()
	nm, ok := msg.(noteMsg)
	if !ok {
		t.Fatalf("got %T", msg)
	}
	if nm.err != nil || !nm.created {
		t.Errorf("got %+v", nm)
	}
	if notes.opened != "EV1" {
		t.Errorf("opened %q", notes.opened)
	}

	next, _ := m.Update(msg)
	if !strings.Contains(next.(Model).View(), "Created note") {
		t.Errorf("status missing:\n%s", next.(Model).View())
	}
}

func TestRefreshTick(t *testing.T) {
	src := &fakeSource{}
	m := fetch(t, New(src, nil, nil))
	before := src.calls

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("tick produced no command")
	}
	// Batch contains a fetch and the next tick; run the batch members that
	// resolve immediately.
	if msg := m.loadEvents()(); msg == nil {
		t.Fatal("fetch produced no message")
	}
	if src.calls <= before {
		t.Error("tick did not refetch")
	}
}
