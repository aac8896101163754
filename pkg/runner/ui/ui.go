// Package ui launches the full-screen agenda.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daybridge/pkg/agenda"
)

// UI runs the interactive agenda until the user quits.
type UI struct {
	Source      agenda.Source
	Notes       agenda.NoteOpener
	CalendarIDs []string
}

func (u *UI) Do(ctx context.Context) error {
	model := agenda.New(u.Source, u.Notes, u.CalendarIDs)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
