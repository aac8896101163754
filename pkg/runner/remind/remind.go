// Package remind creates a reminder through the bridge, falling back to the
// configured default list.
package remind

import (
	"context"
	"fmt"

	"tableflip.dev/daybridge/pkg/bridge"
	"tableflip.dev/daybridge/pkg/printers"
)

// Remind creates one reminder. An empty ListID falls back to DefaultList
// from settings; both empty targets the adapter's default list.
type Remind struct {
	Bridge      *bridge.Bridge
	Pretty      *printers.PrettyPrint
	Title       string
	ListID      string
	DefaultList string
	Due         string // ISO-8601, optional
	Notes       string
}

func (r *Remind) Do(ctx context.Context) error {
	if r.Title == "" {
		return fmt.Errorf("a reminder needs a title")
	}
	listID := r.ListID
	if listID == "" {
		listID = r.DefaultList
	}
	created, err := r.Bridge.CreateReminder(ctx, listID, r.Title, r.Due, r.Notes)
	if err != nil {
		return err
	}
	if created.ListTitle != "" {
		r.Pretty.Notice("added %q to %s", created.Title, created.ListTitle)
	} else {
		r.Pretty.Notice("added %q", created.Title)
	}
	return nil
}
