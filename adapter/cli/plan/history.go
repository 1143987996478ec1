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
	historyFrom string
	historyTo   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the redistribution audit log",
	Long: `List every recorded move attempt in a date range, keyed by the date
the session was moved away from. Failed attempts show the reason.

Examples:
  studyflow plan history
  studyflow plan history --from 2025-06-01 --to 2025-06-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListRedistributionsHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		from := historyFrom
		to := historyTo
		if from == "" {
			from = domain.DateOf(time.Now().AddDate(0, 0, -30))
		}
		if to == "" {
			to = domain.DateOf(time.Now())
		}

		records, err := app.ListRedistributionsHandler.Handle(cmd.Context(), queries.ListRedistributionsQuery{
			From: from,
			To:   to,
		})
		if err != nil {
			return fmt.Errorf("failed to list redistributions: %w", err)
		}

		if len(records) == 0 {
			fmt.Printf("No redistribution activity between %s and %s.\n", from, to)
			return nil
		}

		fmt.Printf("Redistribution log %s to %s:\n\n", from, to)
		for _, r := range records {
			if r.Success {
				fmt.Printf("  %s %s  moved %.1fh  %s %s -> %s %s  (%s #%d)\n",
					r.AttemptedAt.Local().Format("2006-01-02 15:04"), r.Trigger,
					r.Hours, r.FromDate, r.FromTime, r.ToDate, r.ToTime,
					shortID(r.TaskID.String()), r.SessionNumber)
			} else {
				fmt.Printf("  %s %s  failed %.1fh  from %s %s: %s  (%s #%d)\n",
					r.AttemptedAt.Local().Format("2006-01-02 15:04"), r.Trigger,
					r.Hours, r.FromDate, r.FromTime, r.FailureReason,
					shortID(r.TaskID.String()), r.SessionNumber)
			}
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "start date (YYYY-MM-DD, default 30 days ago)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "end date (YYYY-MM-DD, default today)")
}
