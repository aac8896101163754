package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/commands/options"
	"tableflip.dev/daybridge/pkg/envelope"
	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/runner/calendars"
	"tableflip.dev/daybridge/pkg/runner/events"
	"tableflip.dev/daybridge/pkg/runner/reminders"
)

// The adapter verbs are the machine-facing surface: each one prints exactly
// one JSON envelope on stdout and exits 0, success or not. The bridge is
// their only intended caller.

func addAdapterCommands(topLevel *cobra.Command) {
	addListCalendars(topLevel)
	addListEvents(topLevel)
	addGetEvent(topLevel)
	addCreateEvent(topLevel)
	addUpdateEvent(topLevel)
	addDeleteEvent(topLevel)
	addListReminderLists(topLevel)
	addListReminders(topLevel)
	addGetReminder(topLevel)
	addCreateReminder(topLevel)
	addCompleteReminder(topLevel)
	addDeleteReminder(topLevel)
}

// adapterRun wraps a verb so that every failure, including backend setup,
// lands in the envelope instead of the exit code.
func adapterRun(do func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out := &envelope.Writer{Out: cmd.OutOrStdout()}
		s, err := loadStore()
		if err != nil {
			return out.Error(err.Error())
		}
		return do(cmd.Context(), s, out)
	}
}

func adapterCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Hidden:        true,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func addListCalendars(topLevel *cobra.Command) {
	cmd := adapterCmd("list-calendars", "List event calendars as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		r := calendars.List{Store: s, Out: out}
		return r.Do(ctx)
	})
	topLevel.AddCommand(cmd)
}

func addListEvents(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	fo := &options.CalendarFilterOptions{}

	cmd := adapterCmd("list-events", "List events in an inclusive day range as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		if ro.From == "" || ro.To == "" {
			return out.Error("--from and --to are required")
		}
		r := events.List{Store: s, Out: out, From: ro.From, To: ro.To, CalendarIDs: fo.IDs()}
		return r.Do(ctx)
	})

	options.AddRangeArgs(cmd, ro)
	options.AddCalendarFilterArgs(cmd, fo)
	topLevel.AddCommand(cmd)
}

func addGetEvent(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := adapterCmd("get-event", "Get one event by id as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		if io.ID == "" {
			return out.Error("--id is required")
		}
		r := events.Get{Store: s, Out: out, ID: io.ID}
		return r.Do(ctx)
	})

	options.AddIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addCreateEvent(topLevel *cobra.Command) {
	eo := &options.EventOptions{}

	cmd := adapterCmd("create-event", "Create an event and report it as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		r := events.Create{
			Store:      s,
			Out:        out,
			Title:      eo.Title,
			StartDate:  eo.Start,
			EndDate:    eo.End,
			IsAllDay:   eo.AllDay,
			Location:   eo.Location,
			Notes:      eo.Notes,
			CalendarID: eo.Calendar,
		}
		return r.Do(ctx)
	})

	options.AddEventArgs(cmd, eo)
	topLevel.AddCommand(cmd)
}

func addUpdateEvent(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	eo := &options.EventOptions{}

	cmd := adapterCmd("update-event", "Apply a partial update to an event as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		if io.ID == "" {
			return out.Error("--id is required")
		}
		r := events.Update{
			Store:     s,
			Out:       out,
			ID:        io.ID,
			Title:     options.Changed(cmd, "title", eo.Title),
			StartDate: options.Changed(cmd, "start", eo.Start),
			EndDate:   options.Changed(cmd, "end", eo.End),
			Location:  options.Changed(cmd, "location", eo.Location),
			Notes:     options.Changed(cmd, "notes", eo.Notes),
		}
		return r.Do(ctx)
	})

	options.AddIDArgs(cmd, io)
	options.AddEventArgs(cmd, eo)
	topLevel.AddCommand(cmd)
}

func addDeleteEvent(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := adapterCmd("delete-event", "Delete an event by id and confirm as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		if io.ID == "" {
			return out.Error("--id is required")
		}
		r := events.Delete{Store: s, Out: out, ID: io.ID}
		return r.Do(ctx)
	})

	options.AddIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addListReminderLists(topLevel *cobra.Command) {
	cmd := adapterCmd("list-reminder-lists", "List reminder lists as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		r := reminders.Lists{Store: s, Out: out}
		return r.Do(ctx)
	})
	topLevel.AddCommand(cmd)
}

func addListReminders(topLevel *cobra.Command) {
	ro := &options.ReminderOptions{}

	cmd := adapterCmd("list-reminders", "List reminders as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		r := reminders.List{Store: s, Out: out, ListID: ro.List, IncompleteOnly: ro.IncompleteOnly}
		return r.Do(ctx)
	})

	cmd.Flags().StringVar(&ro.List, "list", "",
		"Only include reminders from this list id.")
	options.AddIncompleteArg(cmd, ro)
	topLevel.AddCommand(cmd)
}

func addGetReminder(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := adapterCmd("get-reminder", "Get one reminder by id as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		if io.ID == "" {
			return out.Error("--id is required")
		}
		r := reminders.Get{Store: s, Out: out, ID: io.ID}
		return r.Do(ctx)
	})

	options.AddIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addCreateReminder(topLevel *cobra.Command) {
	ro := &options.ReminderOptions{}

	cmd := adapterCmd("create-reminder", "Create a reminder and report it as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		r := reminders.Create{
			Store:    s,
			Out:      out,
			Title:    ro.Title,
			ListID:   ro.List,
			DueDate:  ro.Due,
			Notes:    ro.Notes,
			Priority: ro.Priority,
		}
		return r.Do(ctx)
	})

	options.AddReminderArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}

func addCompleteReminder(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := adapterCmd("complete-reminder", "Mark a reminder completed as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		if io.ID == "" {
			return out.Error("--id is required")
		}
		r := reminders.Complete{Store: s, Out: out, ID: io.ID}
		return r.Do(ctx)
	})

	options.AddIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addDeleteReminder(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := adapterCmd("delete-reminder", "Delete a reminder by id and confirm as a JSON envelope.")
	cmd.RunE = adapterRun(func(ctx context.Context, s eventkit.Store, out *envelope.Writer) error {
		if io.ID == "" {
			return out.Error("--id is required")
		}
		r := reminders.Delete{Store: s, Out: out, ID: io.ID}
		return r.Do(ctx)
	})

	options.AddIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
