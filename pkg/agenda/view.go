package agenda

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	hintStyle   = lipgloss.NewStyle().Faint(true)
	timeStyle   = lipgloss.NewStyle().Faint(true).Width(14)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	linkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	emptyStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(timeutil.FormatDisplayDate(m.current)))
	b.WriteString("\n\n")

	switch {
	case m.picking:
		b.WriteString(m.dateInput.View())
		b.WriteString("\n")
	case m.loading:
		b.WriteString(emptyStyle.Render("loading..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.events) == 0:
		b.WriteString(emptyStyle.Render("no events"))
		b.WriteString("\n")
	default:
		for i, ev := range m.events {
			b.WriteString(m.renderRow(i, ev))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("h/l: day  t: today  g: go to date  r: refresh  enter: note  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(i int, ev eventkit.Event) string {
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}

	dot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(eventkit.NormalizeHex(ev.CalendarColor))).
		Render("●")

	when := "All day"
	if !ev.IsAllDay {
		when = timeutil.FormatClock(ev.StartDate) + " - " + timeutil.FormatClock(ev.EndDate)
	}

	title := ev.Title
	if i == m.cursor {
		title = cursorStyle.Render(title)
	}

	mark := ""
	if m.linked[ev.ID] {
		mark = " " + linkedStyle.Render("*")
	}

	return cursor + dot + " " + timeStyle.Render(when) + title + mark
}
