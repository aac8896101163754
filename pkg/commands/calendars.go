package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/runner/calendars"
	"tableflip.dev/daybridge/pkg/settings"
)

func addCalendars(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "manage calendar toggles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCalendarsRefresh(cmd)
	addCalendarsList(cmd)
	topLevel.AddCommand(cmd)
}

func addCalendarsRefresh(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "re-fetch the calendar list, keeping existing toggle choices",
		Example: `
daybridge calendars refresh
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, _, err := clientSetup()
			if err != nil {
				return err
			}
			r := calendars.Refresh{
				Source:       b,
				SettingsPath: settings.DefaultPath(),
				Pretty:       &printers.PrettyPrint{},
			}
			return r.Do(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

func addCalendarsList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "show the saved calendar toggles",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := clientSetup()
			if err != nil {
				return err
			}
			pp := &printers.PrettyPrint{}
			for _, t := range s.CalendarToggles {
				state := "off"
				if t.Enabled {
					state = "on"
				}
				pp.Notice("[%s] %s (%s)", state, t.Title, t.ID)
			}
			if len(s.CalendarToggles) == 0 {
				pp.Notice("no calendars saved, run: daybridge calendars refresh")
			}
			return nil
		},
	}

	parent.AddCommand(cmd)
}
