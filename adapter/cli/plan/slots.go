package plan

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

var (
	slotsHours   float64
	slotsFrom    string
	slotsMaxDays int
	slotsLimit   int
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Find open time for a block of study",
	Long: `Search forward from a date for days with enough free time to hold a
contiguous block of the requested length. Locked days are skipped.

Examples:
  studyflow plan slots --hours 2
  studyflow plan slots --hours 1.5 --from 2025-06-20 --days 30 --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FindAvailableSlotsHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		from := slotsFrom
		if from == "" {
			from = domain.DateOf(time.Now())
		}

		matches, err := app.FindAvailableSlotsHandler.Handle(cmd.Context(), queries.FindAvailableSlotsQuery{
			Hours:    slotsHours,
			FromDate: from,
			MaxDays:  slotsMaxDays,
			Limit:    slotsLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to find slots: %w", err)
		}

		if len(matches) == 0 {
			fmt.Printf("No open slot of %.1fh found within %d day(s) of %s.\n", slotsHours, slotsMaxDays, from)
			return nil
		}

		fmt.Printf("Open slots for a %.1fh block:\n\n", slotsHours)
		for _, m := range matches {
			fmt.Printf("  %s (%s)  %s-%s\n", m.Date, domain.WeekdayOf(m.Date), m.Start, m.End)
		}
		return nil
	},
}

func init() {
	slotsCmd.Flags().Float64Var(&slotsHours, "hours", 1, "block length in hours")
	slotsCmd.Flags().StringVar(&slotsFrom, "from", "", "first date to consider (YYYY-MM-DD, default today)")
	slotsCmd.Flags().IntVar(&slotsMaxDays, "days", 14, "how many days forward to search")
	slotsCmd.Flags().IntVar(&slotsLimit, "limit", 10, "maximum number of slots to report")
}
