package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

var combineDate string

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge fragmented sessions on a day",
	Long: `Merge multiple sessions of the same task on one day into a single
block, when a block of that length fits. Locked days are not touched.

Examples:
  studyflow plan combine
  studyflow plan combine --date 2025-06-18`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CombineSessionsHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		date := combineDate
		if date == "" {
			date = domain.DateOf(time.Now())
		}

		result, err := app.CombineSessionsHandler.Handle(cmd.Context(), commands.CombineSessionsCommand{
			Date: date,
		})
		if errors.Is(err, commands.ErrNoPlanForDate) {
			fmt.Printf("No plan exists for %s.\n", date)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to combine sessions: %w", err)
		}
		app.Metrics.Counter(observability.MetricSessionsMerged, int64(result.Merged))

		if result.Merged == 0 {
			fmt.Printf("Nothing to merge on %s.\n", date)
		} else {
			fmt.Printf("Merged %d session group(s) on %s.\n", result.Merged, date)
		}
		return nil
	},
}

func init() {
	combineCmd.Flags().StringVar(&combineDate, "date", "", "date to merge (YYYY-MM-DD, default today)")
}
