package options

import (
	"github.com/spf13/cobra"
)

// ReminderOptions captures the writable fields of a reminder.
type ReminderOptions struct {
	Title          string
	List           string
	Due            string
	Notes          string
	Priority       int
	IncompleteOnly bool
}

func AddReminderArgs(cmd *cobra.Command, o *ReminderOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "", "Reminder title.")
	cmd.Flags().StringVar(&o.List, "list", "",
		"Target reminder list id. Empty means the default list.")
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Due timestamp, example: --due="2026-03-01T09:00:00Z".`)
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Reminder notes.")
	cmd.Flags().IntVar(&o.Priority, "priority", 0,
		"Reminder priority: 0 none, 1 high, 5 medium, 9 low.")
}

func AddIncompleteArg(cmd *cobra.Command, o *ReminderOptions) {
	cmd.Flags().BoolVar(&o.IncompleteOnly, "incomplete-only", false,
		"Only include reminders that are not completed.")
}
