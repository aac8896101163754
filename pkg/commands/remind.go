package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/commands/options"
	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	ro := &options.ReminderOptions{}

	cmd := &cobra.Command{
		Use:   "remind [title]",
		Short: "create a reminder through the adapter",
		Example: `
daybridge remind "Buy milk"
daybridge remind "File taxes" --due 2026-04-15T09:00:00Z --list work
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, _, err := clientSetup()
			if err != nil {
				return err
			}
			r := remind.Remind{
				Bridge:      b,
				Pretty:      &printers.PrettyPrint{},
				Title:       strings.Join(args, " "),
				ListID:      ro.List,
				DefaultList: s.DefaultReminderList,
				Due:         ro.Due,
				Notes:       ro.Notes,
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&ro.List, "list", "",
		"Target reminder list id. Empty uses the configured default.")
	cmd.Flags().StringVar(&ro.Due, "due", "",
		`Due timestamp, example: --due="2026-03-01T09:00:00Z".`)
	cmd.Flags().StringVar(&ro.Notes, "notes", "", "Reminder notes.")
	topLevel.AddCommand(cmd)
}
