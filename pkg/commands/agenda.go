package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/commands/options"
	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/runner/agenda"
)

func addAgenda(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "print the agenda for a day",
		Example: `
daybridge agenda
daybridge agenda --date 2026-03-01
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, m, err := clientSetup()
			if err != nil {
				return err
			}
			a := agenda.Print{
				Source:      b,
				Notes:       m,
				Pretty:      &printers.PrettyPrint{ShowIDs: io.ShowID},
				Date:        do.Date,
				CalendarIDs: s.EnabledCalendarIDs(),
			}
			return a.Do(cmd.Context())
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
