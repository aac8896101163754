package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/commands/options"
	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/runner/pick"
)

func addPick(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "list upcoming events so one can be linked to a note",
		Example: `
daybridge pick
daybridge pick --window 2w
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, m, err := clientSetup()
			if err != nil {
				return err
			}
			p := pick.Pick{
				Source:      b,
				Notes:       m,
				Pretty:      &printers.PrettyPrint{ShowIDs: true},
				Window:      wo.Window,
				CalendarIDs: s.EnabledCalendarIDs(),
			}
			return p.Do(cmd.Context())
		},
	}

	options.AddWindowArgs(cmd, wo)
	topLevel.AddCommand(cmd)
}
