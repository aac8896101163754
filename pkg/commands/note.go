package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/printers"
	"tableflip.dev/daybridge/pkg/runner/note"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "create, sync, or unlink event notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoteOpen(cmd)
	addNoteSync(cmd)
	addNoteUnlink(cmd)
	topLevel.AddCommand(cmd)
}

func addNoteOpen(parent *cobra.Command) {
	eventID := ""

	cmd := &cobra.Command{
		Use:   "open",
		Short: "open the note for an event, creating it if needed",
		Example: `
daybridge note open --event 5FC9BBAB
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventID == "" {
				return errors.New("--event is required")
			}
			_, b, m, err := clientSetup()
			if err != nil {
				return err
			}
			o := note.Open{Bridge: b, Manager: m, Pretty: &printers.PrettyPrint{}, EventID: eventID}
			return o.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Event id to open the note for.")
	parent.AddCommand(cmd)
}

func addNoteSync(parent *cobra.Command) {
	eventID := ""

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "refresh a linked note after the event changed",
		Example: `
daybridge note sync --event 5FC9BBAB
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventID == "" {
				return errors.New("--event is required")
			}
			_, b, m, err := clientSetup()
			if err != nil {
				return err
			}
			s := note.Sync{Bridge: b, Manager: m, Pretty: &printers.PrettyPrint{}, EventID: eventID}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Event id whose note to sync.")
	parent.AddCommand(cmd)
}

func addNoteUnlink(parent *cobra.Command) {
	path := ""

	cmd := &cobra.Command{
		Use:   "unlink",
		Short: "remove the event linkage from a note",
		Example: `
daybridge note unlink --path "2026-03-01 - Standup.md"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return errors.New("--path is required")
			}
			_, _, m, err := clientSetup()
			if err != nil {
				return err
			}
			u := note.Unlink{Manager: m, Pretty: &printers.PrettyPrint{}, Path: path}
			return u.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Vault-relative path of the note.")
	parent.AddCommand(cmd)
}
