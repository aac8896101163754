// Package note implements the vault-side note verbs: open-or-create for an
// event, sync a linked note after the event changed, and unlink.
package note

import (
	"context"
	"fmt"

	"tableflip.dev/daybridge/pkg/bridge"
	"tableflip.dev/daybridge/pkg/notes"
	"tableflip.dev/daybridge/pkg/printers"
)

// Open finds or creates the note for an event.
type Open struct {
	Bridge  *bridge.Bridge
	Manager *notes.Manager
	Pretty  *printers.PrettyPrint
	EventID string
}

func (o *Open) Do(ctx context.Context) error {
	ev, err := o.Bridge.Event(ctx, o.EventID)
	if err != nil {
		return err
	}
	rel, created, err := o.Manager.CreateOrOpenEventNote(ev)
	if err != nil {
		return err
	}
	if created {
		o.Pretty.Notice("created %s", rel)
	} else {
		o.Pretty.Notice("opened %s", rel)
	}
	return nil
}

// Sync refreshes the linked note's frontmatter from the event's current
// state and renames the file when the title or date moved.
type Sync struct {
	Bridge  *bridge.Bridge
	Manager *notes.Manager
	Pretty  *printers.PrettyPrint
	EventID string
}

func (s *Sync) Do(ctx context.Context) error {
	ev, err := s.Bridge.Event(ctx, s.EventID)
	if err != nil {
		return err
	}
	rel, renamed, err := s.Manager.SyncNoteWithEvent(ev)
	if err != nil {
		return err
	}
	if rel == "" {
		return fmt.Errorf("no note linked to event %s", s.EventID)
	}
	if renamed {
		s.Pretty.Notice("synced and renamed to %s", rel)
	} else {
		s.Pretty.Notice("synced %s", rel)
	}
	return nil
}

// Unlink clears the event linkage from a note without deleting the file.
type Unlink struct {
	Manager *notes.Manager
	Pretty  *printers.PrettyPrint
	Path    string // vault-relative
}

func (u *Unlink) Do(ctx context.Context) error {
	if err := u.Manager.UnlinkNote(u.Path); err != nil {
		return err
	}
	u.Pretty.Notice("unlinked %s", u.Path)
	return nil
}
