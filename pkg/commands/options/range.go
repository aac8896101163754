package options

import (
	"strings"

	"github.com/spf13/cobra"
)

// RangeOptions captures the inclusive day range for event listing.
type RangeOptions struct {
	From string
	To   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		`First day of the range, example: --from="2026-03-01".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`Last day of the range, inclusive, example: --to="2026-03-07".`)
}

// CalendarFilterOptions captures the optional calendar id filter.
type CalendarFilterOptions struct {
	Calendars string
}

func AddCalendarFilterArgs(cmd *cobra.Command, o *CalendarFilterOptions) {
	cmd.Flags().StringVar(&o.Calendars, "calendars", "",
		"Comma-separated calendar ids to include. Empty means all calendars.")
}

// IDs splits the filter into individual ids, dropping empty segments.
func (o *CalendarFilterOptions) IDs() []string {
	if o.Calendars == "" {
		return nil
	}
	parts := strings.Split(o.Calendars, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
