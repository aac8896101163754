package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybridge/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Window string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVarP(&o.Window, "window", "w", timeutil.DefaultPickWindow,
		`How far ahead to look, example: --window="2w" or --window="48h".`)
}

// DateOptions
type DateOptions struct {
	Date string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		`Day to show, example: --date="2026-03-01". Empty means today.`)
}
