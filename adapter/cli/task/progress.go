package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show remaining hours per task",
	Long: `Show how much work remains on each pending task, counting done
sessions and sessions frozen on locked days as accounted for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RemainingHoursHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		progress, err := app.RemainingHoursHandler.Handle(cmd.Context(), queries.RemainingHoursQuery{})
		if err != nil {
			return fmt.Errorf("failed to compute progress: %w", err)
		}

		if len(progress) == 0 {
			fmt.Println("No pending tasks.")
			return nil
		}

		fmt.Printf("%-30s  %-10s  %9s  %9s  %s\n", "TITLE", "DEADLINE", "ESTIMATED", "REMAINING", "OPEN SESSIONS")
		fmt.Println(strings.Repeat("-", 80))
		for _, p := range progress {
			fmt.Printf("%-30s  %-10s  %8.1fh  %8.1fh  %d\n",
				truncate(p.Title, 30), p.Deadline, p.EstimatedHours, p.RemainingHours, p.OpenSessions)
		}

		return nil
	},
}
