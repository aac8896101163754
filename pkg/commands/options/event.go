package options

import (
	"github.com/spf13/cobra"
)

// EventOptions captures the writable fields of an event. For updates, only
// the flags the user actually set are applied.
type EventOptions struct {
	Title    string
	Start    string
	End      string
	AllDay   bool
	Location string
	Notes    string
	Calendar string
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "", "Event title.")
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start timestamp, example: --start="2026-03-01T09:00:00Z".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`End timestamp, example: --end="2026-03-01T10:00:00Z".`)
	cmd.Flags().BoolVar(&o.AllDay, "all-day", false, "Mark the event all-day.")
	cmd.Flags().StringVar(&o.Location, "location", "", "Event location.")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Event notes.")
	cmd.Flags().StringVar(&o.Calendar, "calendar", "",
		"Target calendar id. Empty means the default calendar.")
}

// Changed returns a pointer to value when the named flag was set, nil
// otherwise. Update verbs use it to distinguish "clear" from "leave alone".
func Changed(cmd *cobra.Command, name string, value string) *string {
	if cmd.Flags().Changed(name) {
		return &value
	}
	return nil
}
