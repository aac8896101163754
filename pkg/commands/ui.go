package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the full-screen agenda",
		Example: `
daybridge ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, m, err := clientSetup()
			if err != nil {
				return err
			}
			i := ui.UI{Source: b, Notes: m, CalendarIDs: s.EnabledCalendarIDs()}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
