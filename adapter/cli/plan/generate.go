package plan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the study schedule",
	Long: `Rebuild the schedule for every pending task. Locked days keep their
sessions exactly as they are; everything else is replanned from today
up to each task's deadline.

Examples:
  studyflow plan generate`,
	Aliases: []string{"gen"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GeneratePlanHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		timer := observability.StartTimer("plan.generate").WithMetrics(app.Metrics)
		result, err := app.GeneratePlanHandler.Handle(cmd.Context(), commands.GeneratePlanCommand{})
		timer.StopWithError(err)
		if err != nil {
			return fmt.Errorf("failed to generate plan: %w", err)
		}
		app.Metrics.Counter(observability.MetricPlanGenerations, 1)

		fmt.Printf("Planned %d day(s).\n", result.DaysPlanned)
		if len(result.Outcomes) > 0 {
			fmt.Println(strings.Repeat("-", 60))
		}
		for _, o := range result.Outcomes {
			fmt.Printf("  %-30s  %4.1fh of %4.1fh placed", truncate(o.Title, 30), o.PlacedHours, o.RequiredHours)
			if o.Reason != "" {
				fmt.Printf("  (%s)", o.Reason)
			}
			fmt.Println()
		}

		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
