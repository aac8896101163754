// Package agenda implements the single-day agenda terminal UI. It talks to
// the adapter only through the bridge and re-fetches on navigation and on a
// five-minute timer.
package agenda

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// refreshInterval is the background poll cadence.
const refreshInterval = 5 * time.Minute

// Source fetches the day's events; the bridge satisfies it.
type Source interface {
	Events(ctx context.Context, from, to string, calendarIDs []string) ([]eventkit.Event, error)
}

// NoteOpener links agenda rows to vault notes; notes.Manager satisfies it.
type NoteOpener interface {
	LinkedEventIDs() map[string]bool
	CreateOrOpenEventNote(ev eventkit.Event) (string, bool, error)
}

type eventsMsg struct {
	day    time.Time
	events []eventkit.Event
	linked map[string]bool
	err    error
}

type noteMsg struct {
	path    string
	created bool
	err     error
}

type tickMsg time.Time

// Model is the agenda viewport state: one day at a time.
type Model struct {
	source      Source
	notes       NoteOpener
	calendarIDs []string

	current time.Time
	events  []eventkit.Event
	linked  map[string]bool
	cursor  int

	loading bool
	err     error
	status  string

	picking   bool
	dateInput textinput.Model

	width  int
	height int
}

// New creates an agenda model showing today. calendarIDs filters the fetch
// when non-empty.
func New(source Source, notes NoteOpener, calendarIDs []string) Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	ti.Prompt = "Go to date: "

	return Model{
		source:      source,
		notes:       notes,
		calendarIDs: calendarIDs,
		current:     timeutil.StartOfDay(time.Now()),
		linked:      map[string]bool{},
		loading:     true,
		dateInput:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadEvents(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadEvents() tea.Cmd {
	day := m.current
	source := m.source
	notes := m.notes
	ids := m.calendarIDs
	return func() tea.Msg {
		dateStr := day.Format(timeutil.LayoutDay)
		events, err := source.Events(context.Background(), dateStr, dateStr, ids)
		msg := eventsMsg{day: day, events: events, err: err}
		if notes != nil {
			msg.linked = notes.LinkedEventIDs()
		}
		return msg
	}
}

func (m Model) openNote() tea.Cmd {
	if m.notes == nil || m.cursor < 0 || m.cursor >= len(m.events) {
		return nil
	}
	ev := m.events[m.cursor]
	notes := m.notes
	return func() tea.Msg {
		path, created, err := notes.CreateOrOpenEventNote(ev)
		return noteMsg{path: path, created: created, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadEvents(), tick())

	case eventsMsg:
		// No generation check: overlapping refreshes are idempotent and
		// the last completed fetch wins.
		m.loading = false
		m.err = msg.err
		m.events = msg.events
		if msg.linked != nil {
			m.linked = msg.linked
		}
		if m.cursor >= len(m.events) {
			m.cursor = 0
		}
		return m, nil

	case noteMsg:
		if msg.err != nil {
			m.status = "Failed to open note: " + msg.err.Error()
			return m, nil
		}
		if msg.created {
			m.status = "Created note: " + msg.path
		} else {
			m.status = "Opened note: " + msg.path
		}
		return m, m.loadEvents()

	case tea.KeyMsg:
		if m.picking {
			return m.updateDatePicker(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		return m.gotoDay(timeutil.AddDays(m.current, -1))
	case "right", "l":
		return m.gotoDay(timeutil.AddDays(m.current, 1))
	case "t":
		return m.gotoDay(timeutil.StartOfDay(time.Now()))
	case "r":
		m.loading = true
		m.status = ""
		return m, m.loadEvents()
	case "g":
		m.picking = true
		m.dateInput.SetValue("")
		m.dateInput.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.events)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m, m.openNote()
	}
	return m, nil
}

func (m Model) updateDatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.picking = false
		return m, nil
	case "enter":
		day, err := timeutil.ParseDay(m.dateInput.Value())
		if err != nil {
			m.status = err.Error()
			m.picking = false
			return m, nil
		}
		m.picking = false
		return m.gotoDay(day)
	}
	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m Model) gotoDay(day time.Time) (tea.Model, tea.Cmd) {
	m.current = day
	m.cursor = 0
	m.loading = true
	m.status = ""
	return m, m.loadEvents()
}
